package mcp

import "github.com/rpggio/worklog/internal/domain/activity"

// LogActivityParams are the log_activity tool arguments.
type LogActivityParams struct {
	ToolName      string   `json:"tool_name" jsonschema:"Name of the AI tool that performed the activity (e.g., 'Warp', 'Claude Code', 'GitHub Copilot')"`
	LogMessage    string   `json:"log_message" jsonschema:"Detailed log message describing what was accomplished"`
	AIModel       *string  `json:"ai_model,omitempty" jsonschema:"AI model used (e.g., 'gemini-2.5-pro', 'claude-3-sonnet', 'gpt-4')"`
	TokensUsed    *int64   `json:"tokens_used,omitempty" jsonschema:"Total tokens consumed in the request (optional)"`
	InputTokens   *int64   `json:"input_tokens,omitempty" jsonschema:"Input tokens used (optional)"`
	OutputTokens  *int64   `json:"output_tokens,omitempty" jsonschema:"Output tokens generated (optional)"`
	ContextLength *int64   `json:"context_length,omitempty" jsonschema:"Context window length used, in thousands of tokens (optional)"`
	DurationMs    *int64   `json:"duration_ms,omitempty" jsonschema:"Duration of the operation in milliseconds (optional)"`
	CostUSD       *float64 `json:"cost_usd,omitempty" jsonschema:"Estimated cost in USD (optional)"`
	Success       *bool    `json:"success,omitempty" jsonschema:"Whether the operation was successful (optional, defaults to true)"`
	ErrorMessage  *string  `json:"error_message,omitempty" jsonschema:"Error message if operation failed (optional)"`
	Tags          []string `json:"tags,omitempty" jsonschema:"Tags to categorize the activity (e.g., ['coding', 'debugging', 'refactoring']) (optional)"`
}

// Record converts the tool arguments into an activity record. success
// defaults to true when omitted.
func (p LogActivityParams) Record() activity.Record {
	success := true
	if p.Success != nil {
		success = *p.Success
	}
	return activity.Record{
		ToolName:       p.ToolName,
		Message:        p.LogMessage,
		Model:          p.AIModel,
		TokensTotal:    p.TokensUsed,
		TokensIn:       p.InputTokens,
		TokensOut:      p.OutputTokens,
		ContextLengthK: p.ContextLength,
		DurationMs:     p.DurationMs,
		CostUSD:        p.CostUSD,
		Success:        success,
		ErrorMessage:   p.ErrorMessage,
		Tags:           p.Tags,
	}
}
