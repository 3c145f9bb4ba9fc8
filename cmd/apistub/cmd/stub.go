package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/apistub/internal/app"
)

var stubCmd = &cobra.Command{
	Use:   "stub FILE",
	Short: "Print the stub of one Java file",
	Long:  "Stubs a single file and prints the result to stdout. Nothing is printed when no type survives.",
	Args:  cobra.ExactArgs(1),
	RunE:  runStub,
}

func runStub(cmd *cobra.Command, args []string) error {
	loader, _, err := newLoader(cfg)
	if err != nil {
		return err
	}

	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	out, res, err := app.NewGenerator(cfg, loader, nil, logger).StubSource(path, src)
	if err != nil {
		return err
	}
	if out == nil {
		logger.Info("no public types", "path", path, "types_removed", res.TypesRemoved)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
