package mcp

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const logActivityTool = "log_activity"

// buildToolCatalog returns all available MCP tools.
func buildToolCatalog() ([]*sdkmcp.Tool, error) {
	schema, err := jsonschema.For[LogActivityParams](nil)
	if err != nil {
		return nil, fmt.Errorf("log_activity input schema: %w", err)
	}
	return []*sdkmcp.Tool{
		{
			Name:        logActivityTool,
			Description: "Log AI tool activity to a daily worklog file with comprehensive metrics",
			InputSchema: schema,
			Annotations: &sdkmcp.ToolAnnotations{
				Title:           "Log activity",
				DestructiveHint: boolPtr(false),
				IdempotentHint:  false,
				OpenWorldHint:   boolPtr(false),
			},
		},
	}, nil
}

func registerTools(server *sdkmcp.Server, h *Handler) error {
	tools, err := buildToolCatalog()
	if err != nil {
		return err
	}
	handlers := map[string]sdkmcp.ToolHandler{
		logActivityTool: h.LogActivity,
	}
	for _, tool := range tools {
		handler, ok := handlers[tool.Name]
		if !ok {
			return fmt.Errorf("no handler for tool %q", tool.Name)
		}
		server.AddTool(tool, handler)
	}
	return nil
}

func boolPtr(v bool) *bool {
	return &v
}
