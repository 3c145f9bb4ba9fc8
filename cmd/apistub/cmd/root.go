package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/apistub/internal/app"
)

var (
	configPath string
	verbose    bool

	// cfg and logger are set by the root pre-run hook.
	cfg    *app.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "apistub",
	Short: "Generate compile-only Java API stubs",
	Long: "Rewrites a Java source tree into its public surface: non-visible declarations are dropped\n" +
		"and every method and constructor body throws UnsupportedOperationException.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default .apistub.yaml in . or $HOME)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log every file")
	pf.String("log-level", app.DefaultLogLevel, "log level: debug, info, warn, error")
	pf.String("source", app.DefaultSourceRoot, "source root to read")
	pf.String("dest", app.DefaultDestRoot, "destination root for stubs")
	pf.StringSlice("include", app.DefaultInclude, "relative path prefixes to stub")
	pf.Int("workers", 0, "parallel files (default: number of CPUs)")
	pf.Bool("keep-going", false, "continue past failing files and report them all")
	pf.String("grammar-dir", "", "directory holding java.so for lean builds")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(stubCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := app.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if verbose {
		c.LogLevel = "debug"
	}
	lvl, err := c.Level()
	if err != nil {
		return err
	}

	cfg = c
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	return nil
}

// projectRoot returns the working directory.
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}
