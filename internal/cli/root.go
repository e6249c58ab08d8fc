package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gdscriptmcp/internal/logx"
	"gdscriptmcp/internal/paths"
)

// version is stamped at build time with
// -ldflags "-X gdscriptmcp/internal/cli.version=...".
var version = "dev"

var (
	configPath string
	outputJSON bool
)

// Execute runs the root cobra command.
func Execute() {
	log := logx.New(os.Stderr)
	err := newRootCmd(log).Execute()
	_ = log.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(log *logx.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   paths.AppName,
		Short: "MCP server exposing the GDQuest GDScript formatter and linter over stdio",
		Long: "Serves the gdscript_format and gdscript_lint tools over Content-Length framed JSON-RPC on stdin/stdout.\n" +
			"The formatter executable is downloaded from the latest GitHub release and cached per platform.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, log)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (overrides $"+configEnvHint+")")
	log.AddLevelFlag(cmd.PersistentFlags())

	cmd.AddCommand(newServeCmd(log))
	cmd.AddCommand(newInstallCmd(log))
	cmd.AddCommand(newStatusCmd(log))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
