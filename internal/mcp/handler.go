package mcp

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/bytedance/sonic"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/domain/activity"
)

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	LogActivity(ctx context.Context, rec activity.Record) (*activity.Result, error)
}

// Handler serves the worklog tools.
type Handler struct {
	activity ActivityService
	logger   *slog.Logger
}

// NewHandler creates a new MCP handler.
func NewHandler(activitySvc ActivityService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{activity: activitySvc, logger: logger}
}

// LogActivity handles a log_activity call. Failures are reported in the
// result with IsError set, never as protocol errors.
func (h *Handler) LogActivity(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
	var raw []byte
	if req != nil && req.Params != nil {
		raw = req.Params.Arguments
	}

	params, err := decodeParams(raw)
	if err != nil {
		h.logger.Debug("log_activity: undecodable arguments", "error", err, "request_id", requestIDFrom(ctx))
		return errorResult(&APIError{Code: "INVALID_INPUT", Message: "arguments must be an object matching the log_activity schema"}), nil
	}

	res, err := h.activity.LogActivity(ctx, params.Record())
	if err != nil {
		apiErr := MapError(err)
		h.logger.Warn("log_activity failed", "code", apiErr.Code, "error", err, "request_id", requestIDFrom(ctx))
		return errorResult(apiErr), nil
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: res.Confirmation()}},
	}, nil
}

func decodeParams(raw []byte) (LogActivityParams, error) {
	var params LogActivityParams
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return params, nil
	}
	if err := sonic.Unmarshal(trimmed, &params); err != nil {
		return LogActivityParams{}, err
	}
	return params, nil
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: activity.GlyphFailure + " Error logging activity: " + apiErr.Message}},
		IsError: true,
	}
}
