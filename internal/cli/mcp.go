package cli

import (
	"fmt"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/claude/repbook/internal/mcp"
)

// Version is reported to MCP clients. Set at build time via -ldflags.
var Version = "dev"

func newMCPCmd(a *app) *cobra.Command {
	var remote, apiKey string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve MCP tools over stdio",
		Long:  "Run a Model Context Protocol server on stdin/stdout. Reads the local store, or a running repbook server with --remote.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote != "" {
				log := a.newLogger(cmd.ErrOrStderr(), slog.LevelInfo)
				s := mcp.New(mcp.NewHTTPClient(remote, apiKey), Version, log)
				return serveStdio(s)
			}
			return a.run(cmd, func(e *env) error {
				s := mcp.New(mcp.NewLocal(e.repo, e.locale), Version, e.log)
				return serveStdio(s)
			})
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "Base URL of a repbook server, e.g. http://repbook")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "X-API-Key for --remote")
	return cmd
}

func serveStdio(s *mcpserver.MCPServer) error {
	if err := mcpserver.ServeStdio(s); err != nil {
		return fmt.Errorf("mcp: %w", err)
	}
	return nil
}
