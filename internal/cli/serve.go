package cli

import (
	"github.com/spf13/cobra"

	"gdscriptmcp/internal/executor"
	"gdscriptmcp/internal/logx"
	"gdscriptmcp/internal/server"
)

func newServeCmd(log *logx.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP requests on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, log)
		},
	}
}

func runServe(cmd *cobra.Command, log *logx.Logger) error {
	s, err := setup(cmd, log)
	if err != nil {
		return err
	}

	ex := executor.New(s.manager(nil), executor.CmdRunner{}, log.WithName("executor"))
	srv := server.New(ex, version, log.WithName("server"))

	log.Info("serving MCP on stdio", "version", version, "cache_root", s.cacheRoot)
	return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
