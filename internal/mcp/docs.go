package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `mcp-work-history keeps a human-readable daily worklog of AI tool activity.

Call log_activity once per meaningful unit of work:
- tool_name and log_message are required.
- Add ai_model, token counts, context_length (thousands of tokens), duration_ms, cost_usd and tags when known.
- Set success=false with error_message when the work failed.

Each day gets one markdown file; entries are appended oldest first and existing entries are never edited.
See worklog://docs/format for the exact line format.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "worklog://docs/format",
		Name:        "worklog_format",
		Title:       "Worklog line format",
		Description: "How log_activity arguments are rendered into a daily worklog entry.",
		Content: `# Worklog line format

Files are named ` + "`worklog-YYYY-MM-DD.md`" + ` and start with ` + "`# 📝 Work Log - YYYY-MM-DD`" + `.

Each call appends one line:

    - <✅|❌> HH:MM - <tool_name> (<ai_model>): <log_message> (<metadata>)

The model part is omitted when ` + "`ai_model`" + ` is absent. Metadata fragments appear
in this order, joined by ` + "` | `" + `, and the parentheses are omitted when none apply:

1. tokens: ` + "`1500 tokens`" + ` from tokens_used, otherwise ` + "`1000 tokens (800→200)`" + ` from input/output tokens
2. context: ` + "`8k ctx`" + `
3. duration: ` + "`999ms`" + ` below one second, ` + "`2.5s`" + ` from one second up
4. cost: ` + "`$0.0025`" + ` (four decimals)
5. failure: ` + "`❌ <error_message>`" + ` only when success=false
6. tags: ` + "`[coding, feature]`" + `

Example:

    - ✅ 14:05 - Claude Code (claude-3-sonnet): Implemented feature X (1500 tokens | 8k ctx | 2.5s | $0.0025 | [coding, feature])
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
