// Package mcp exposes the YouTube138 tools over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/youtube138-mcp/internal/common"
	"github.com/bobmcallan/youtube138-mcp/internal/config"
	httpserver "github.com/bobmcallan/youtube138-mcp/internal/server"
	"github.com/bobmcallan/youtube138-mcp/internal/youtube"
)

// NewServer creates an MCP server with all YouTube138 tools registered.
func NewServer(cfg *config.Config, d *youtube.Dispatcher, logger *common.Logger) *server.MCPServer {
	mcpSrv := server.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
	)

	toolCount := RegisterTools(mcpSrv, d)

	logger.Info().
		Int("tools", toolCount).
		Str("api_host", cfg.API.Host).
		Bool("credential", d.HasCredential()).
		Msg("MCP server initialized")

	return mcpSrv
}

// Serve runs the server on the configured transport and blocks until it stops.
func Serve(ctx context.Context, cfg *config.Config, s *server.MCPServer, logger *common.Logger) error {
	if cfg.Server.Transport == "http" {
		streamable := server.NewStreamableHTTPServer(s,
			server.WithStateLess(true),
		)
		fmt.Fprintf(os.Stderr, "YouTube138 MCP server started on :%s/mcp\n", cfg.Server.Port)
		return httpserver.New(cfg, streamable, logger).Start(ctx)
	}

	logger.Info().Msg("starting MCP stdio")
	fmt.Fprintln(os.Stderr, "YouTube138 MCP server started on stdio")
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}
