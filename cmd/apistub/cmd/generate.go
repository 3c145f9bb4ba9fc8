package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/apistub/internal/adapters/bbolt"
	"github.com/corey/apistub/internal/adapters/filesystem"
	"github.com/corey/apistub/internal/app"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write stubs for every selected source file",
	Long: "Reads every selected file under the source root and writes its stub to the mirrored\n" +
		"path under the destination root. Files without a public or protected type are not written.",
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("cache", "", "incremental cache file; a bare --cache uses "+app.DefaultCacheFile)
	generateCmd.Flags().Lookup("cache").NoOptDefVal = app.DefaultCacheFile
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	loader, _, err := newLoader(cfg)
	if err != nil {
		return err
	}

	g := app.NewGenerator(cfg, loader, filesystem.NewEmitter(cfg.DestRoot), logger)
	closeCache := openCache(g)
	defer closeCache()

	sum, err := g.Run(cmd.Context())
	if sum != nil {
		printSummary(cmd.OutOrStdout(), cfg, sum)
	}
	return err
}

// openCache attaches the configured incremental cache to g. A cache that
// cannot be opened is logged and the run continues without it.
func openCache(g *app.Generator) func() {
	if cfg.CacheFile == "" {
		return func() {}
	}
	c, err := bbolt.OpenCache(cfg.CacheFile, cfg.Fingerprint())
	if err != nil {
		logger.Warn("cache disabled", "err", err)
		return func() {}
	}
	if n, err := c.Len(); err == nil {
		logger.Debug("cache opened", "path", cfg.CacheFile, "entries", n)
	}
	g.UseCache(c)
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("cache close failed", "err", err)
		}
	}
}
