package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gdscriptmcp/internal/logx"
	"gdscriptmcp/internal/tui"
)

func newStatusCmd(log *logx.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the cached formatter without contacting the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, log)
		},
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	return cmd
}

func runStatus(cmd *cobra.Command, log *logx.Logger) error {
	s, err := setup(cmd, log)
	if err != nil {
		return err
	}

	status := s.manager(nil).Detect(cmd.Context(), true)
	out := cmd.OutOrStdout()

	if outputJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprint(out, tui.RenderStatus(status, tui.IsTerminal(out)))
	return nil
}
