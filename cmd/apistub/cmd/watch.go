package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/apistub/internal/adapters/filesystem"
	fsw "github.com/corey/apistub/internal/adapters/fsnotify"
	"github.com/corey/apistub/internal/app"
)

var watchInitial bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate stubs as sources change",
	Long:  "Watches the source root and rewrites the stub of every changed file until interrupted.",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitial, "initial", true, "run a full generate before watching")
	watchCmd.Flags().String("cache", "", "incremental cache file; a bare --cache uses "+app.DefaultCacheFile)
	watchCmd.Flags().Lookup("cache").NoOptDefVal = app.DefaultCacheFile
}

func runWatch(cmd *cobra.Command, _ []string) error {
	loader, _, err := newLoader(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := app.NewGenerator(cfg, loader, filesystem.NewEmitter(cfg.DestRoot), logger)
	closeCache := openCache(g)
	defer closeCache()

	if watchInitial {
		sum, err := g.Run(ctx)
		if sum != nil {
			printSummary(cmd.OutOrStdout(), cfg, sum)
		}
		if err != nil && !cfg.KeepGoing {
			return err
		}
	}

	w, err := fsw.NewWatcher()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	err = g.Watch(ctx, w, func(r app.FileResult) {
		printFileResult(out, r)
	})
	if err != nil && ctx.Err() == context.Canceled {
		return nil
	}
	return err
}
