package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long:  "Prints the configuration after defaults, config file, APISTUB_* variables and flags are merged.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	w := cmd.OutOrStdout()
	if _, grammar, err := newLoader(cfg); err == nil {
		fmt.Fprintf(w, "# grammar: %s\n", grammar)
	} else {
		fmt.Fprintf(w, "# grammar: unavailable (%v)\n", err)
	}
	_, err = w.Write(out)
	return err
}
