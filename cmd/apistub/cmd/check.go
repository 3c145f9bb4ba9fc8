package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/apistub/internal/adapters/filesystem"
	"github.com/corey/apistub/internal/app"
)

var checkDiff bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the destination tree is up to date",
	Long: "Regenerates every stub in memory and compares it with the destination root.\n" +
		"Exits 1 when a stub is missing, different, or no longer produced.",
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkDiff, "diff", true, "print a line diff for changed stubs")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	loader, _, err := newLoader(cfg)
	if err != nil {
		return err
	}

	em := filesystem.NewEmitter(cfg.DestRoot)
	report, err := app.NewGenerator(cfg, loader, em, logger).Check(cmd.Context(), em)
	if report != nil {
		printCheck(cmd.OutOrStdout(), report, checkDiff)
	}
	return err
}
