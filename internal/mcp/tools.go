package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/youtube138-mcp/internal/youtube"
)

// RegisterTools registers every registry tool on the server, wiring each to
// a handler that invokes the dispatcher. Returns the number of tools registered.
func RegisterTools(s *server.MCPServer, d *youtube.Dispatcher) int {
	tools := youtube.ListTools()
	for _, td := range tools {
		s.AddTool(BuildMCPTool(td), ToolHandler(d, td.Name))
	}
	return len(tools)
}

// BuildMCPTool converts a ToolDescriptor into an mcp.Tool with the appropriate schema.
func BuildMCPTool(td youtube.ToolDescriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(td.Description)}
	for _, p := range td.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(td.Name, opts...)
}

// buildParamOption maps a Param to the appropriate mcp-go tool option.
func buildParamOption(p youtube.Param) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case "number":
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		return mcp.WithBoolean(p.Name, opts...)
	default:
		if p.Default != "" {
			opts = append(opts, mcp.DefaultString(p.Default))
		}
		return mcp.WithString(p.Name, opts...)
	}
}
