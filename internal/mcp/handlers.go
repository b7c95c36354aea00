package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/youtube138-mcp/internal/youtube"
)

// ToolHandler returns a handler that runs the named tool through the dispatcher.
//
// Validation and credential errors are returned as handler errors, which mcp-go
// reports as JSON-RPC errors. Upstream failures come back as a normal result
// whose text is the JSON error record, so callers must inspect the payload.
func ToolHandler(d *youtube.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := d.Invoke(ctx, name, r.GetArguments())
		if err != nil {
			return nil, err
		}

		text, err := result.Text()
		if err != nil {
			return nil, fmt.Errorf("failed to format %s result: %w", name, err)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(text)},
		}, nil
	}
}
