package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// NewMCPServer creates an MCP server exposing the youtube_summarize tool.
func NewMCPServer(s Summarizer, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytsum",
		Version: version,
	}, nil)
	registerSummarize(server, s)
	return server
}

func registerSummarize(server *mcp.Server, s Summarizer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_summarize",
		Description: "Summarize a YouTube video from its transcript. Uses the manual English transcript, falling back to auto-generated English captions, then to a translation of another language. Returns JSON with topic_name and topic_summary.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SummarizeInput) (*mcp.CallToolResult, *engine.Summary, error) {
		if input.URL == "" {
			return nil, nil, fmt.Errorf("url is required")
		}
		out, err := s.Summarize(ctx, input.URL)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

// mcpHandler serves server over the MCP streamable HTTP transport.
func mcpHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}
