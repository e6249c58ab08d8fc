package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gdscriptmcp/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect server configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration in YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ResolvePath(configPath))
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, string(data))
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fmt.Fprintln(out)
	}
	return nil
}
