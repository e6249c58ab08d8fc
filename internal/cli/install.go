package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gdscriptmcp/internal/logx"
	"gdscriptmcp/internal/tools"
	"gdscriptmcp/internal/tui"
)

func newInstallCmd(log *logx.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download or update the cached formatter binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, log)
		},
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	return cmd
}

type installReport struct {
	tools.Resolution
	Error string `json:"error,omitempty"`
}

func runInstall(cmd *cobra.Command, log *logx.Logger) error {
	s, err := setup(cmd, log)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var res tools.Resolution
	switch tui.DetectMode(out, outputJSON) {
	case tui.ModeJSON:
		res, err = s.manager(nil).Ensure(ctx)
		report := installReport{Resolution: res}
		if err != nil {
			report.Error = err.Error()
		}
		data, encErr := json.MarshalIndent(report, "", "  ")
		if encErr != nil {
			return fmt.Errorf("encode json: %w", encErr)
		}
		fmt.Fprintln(out, string(data))
		return err

	case tui.ModeTUI:
		model := tui.NewInstallModel(s.manager(nil).Detect(ctx, false).Platform)
		err = tui.RunWithWork(out, model, func(send func(tea.Msg)) error {
			var ensureErr error
			res, ensureErr = s.manager(tui.StageReporter(send)).Ensure(ctx)
			return ensureErr
		})

	default:
		res, err = s.manager(func(stage tools.Stage, detail string) {
			fmt.Fprintf(out, "%-11s %s\n", stage, tui.NonEmptyOrDash(detail))
		}).Ensure(ctx)
	}
	if err != nil {
		if tools.IsNetworkError(err) {
			return fmt.Errorf("%w\nhint: check network access to the release endpoint, or set %s to a local formatter binary", err, tools.EnvBinaryPath)
		}
		return err
	}

	fmt.Fprintf(out, "formatter ready: %s", res.Path)
	if res.Version != "" {
		fmt.Fprintf(out, " (%s)", res.Version)
	}
	fmt.Fprintln(out)
	if res.Stale {
		fmt.Fprintf(out, "warning: %s\n", res.Warning)
	}
	return nil
}
