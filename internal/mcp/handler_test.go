package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/filestore"
	"github.com/stretchr/testify/require"
)

type activityStub struct {
	logFn func(context.Context, activity.Record) (*activity.Result, error)
}

func (a activityStub) LogActivity(ctx context.Context, rec activity.Record) (*activity.Result, error) {
	return a.logFn(ctx, rec)
}

func callRequest(t *testing.T, args any) *sdkmcp.CallToolRequest {
	t.Helper()
	var raw json.RawMessage
	switch v := args.(type) {
	case nil:
	case string:
		raw = json.RawMessage(v)
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		raw = data
	}
	return &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: logActivityTool, Arguments: raw}}
}

func resultText(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandler_LogActivity_Success(t *testing.T) {
	var got activity.Record
	handler := NewHandler(activityStub{logFn: func(_ context.Context, rec activity.Record) (*activity.Result, error) {
		got = rec
		return &activity.Result{
			Entry:   activity.Render(rec, time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)),
			NewFile: true,
		}, nil
	}}, nil)

	res, err := handler.LogActivity(context.Background(), callRequest(t, map[string]any{
		"tool_name":     "Claude Code",
		"log_message":   "Implemented feature X",
		"ai_model":      "claude-3-sonnet",
		"tokens_used":   1500,
		"input_tokens":  800,
		"output_tokens": 200,
		"tags":          []string{"coding", "feature"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Equal(t,
		"✅ Activity logged: 09:30 - Claude Code (claude-3-sonnet): Implemented feature X (1500 tokens | [coding, feature]) (new file created)",
		resultText(t, res))

	require.True(t, got.Success)
	require.Equal(t, int64(800), *got.TokensIn)
	require.Equal(t, []string{"coding", "feature"}, got.Tags)
}

func TestHandler_LogActivity_ExplicitFailure(t *testing.T) {
	var got activity.Record
	handler := NewHandler(activityStub{logFn: func(_ context.Context, rec activity.Record) (*activity.Result, error) {
		got = rec
		return &activity.Result{Entry: activity.Render(rec, time.Now())}, nil
	}}, nil)

	res, err := handler.LogActivity(context.Background(), callRequest(t, map[string]any{
		"tool_name":     "Test Tool",
		"log_message":   "Failed operation",
		"success":       false,
		"error_message": "Connection timeout",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.False(t, got.Success)
	require.Contains(t, resultText(t, res), "(❌ Connection timeout)")
}

func TestHandler_LogActivity_UndecodableArguments(t *testing.T) {
	handler := NewHandler(activityStub{logFn: func(context.Context, activity.Record) (*activity.Result, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}, nil)

	for _, args := range []string{`[1,2]`, `{"tool_name": 7}`, `{"tokens_used": "many"}`} {
		res, err := handler.LogActivity(context.Background(), callRequest(t, args))
		require.NoError(t, err, args)
		require.True(t, res.IsError, args)
		require.Contains(t, resultText(t, res), "❌ Error logging activity:")
	}
}

func TestHandler_LogActivity_ValidationLeavesNoFile(t *testing.T) {
	root := t.TempDir()
	svc := activity.NewService(filestore.New(root), nil)
	handler := NewHandler(svc, nil)

	cases := []any{
		nil,
		map[string]any{"log_message": "no tool"},
		map[string]any{"tool_name": "Tool", "log_message": ""},
		map[string]any{"tool_name": "  ", "log_message": "blank tool"},
	}
	for _, args := range cases {
		res, err := handler.LogActivity(context.Background(), callRequest(t, args))
		require.NoError(t, err)
		require.True(t, res.IsError)
	}

	res, err := handler.LogActivity(context.Background(), callRequest(t, nil))
	require.NoError(t, err)
	require.Equal(t, "❌ Error logging activity: tool_name and log_message are required", resultText(t, res))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestHandler_LogActivity_StorageFailureHidesPath(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(root, []byte("not a directory"), 0o644))

	handler := NewHandler(activity.NewService(filestore.New(root), nil), nil)
	res, err := handler.LogActivity(context.Background(), callRequest(t, map[string]any{
		"tool_name":   "Tool",
		"log_message": "msg",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)

	text := resultText(t, res)
	require.Contains(t, text, "❌ Error logging activity: failed to write worklog")
	require.NotContains(t, text, dir)

	// The handler stays usable after a failure.
	handler = NewHandler(activity.NewService(filestore.New(filepath.Join(dir, "ok")), nil), nil)
	res, err = handler.LogActivity(context.Background(), callRequest(t, map[string]any{
		"tool_name":   "Tool",
		"log_message": "msg",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))

	apiErr := MapError(&activity.ValidationError{Fields: []string{"tool_name"}})
	require.Equal(t, "INVALID_INPUT", apiErr.Code)
	require.Equal(t, "tool_name is required", apiErr.Message)

	apiErr = MapError(fmt.Errorf("appending activity: %w", &filestore.Error{
		Op:  "write",
		Err: &os.PathError{Op: "open", Path: "/secret/logs/worklog-2026-10-15.md", Err: errors.New("disk full")},
	}))
	require.Equal(t, "STORAGE_FAILURE", apiErr.Code)
	require.Equal(t, "failed to write worklog: disk full", apiErr.Message)

	apiErr = MapError(errors.New("boom"))
	require.Equal(t, "INTERNAL", apiErr.Code)
	require.NotContains(t, apiErr.Message, "boom")
}

func TestBuildToolCatalog(t *testing.T) {
	tools, err := buildToolCatalog()
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, "log_activity", tools[0].Name)

	data, err := json.Marshal(tools[0].InputSchema)
	require.NoError(t, err)

	var schema struct {
		Type       string                     `json:"type"`
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))
	require.Equal(t, "object", schema.Type)
	require.ElementsMatch(t, []string{"tool_name", "log_message"}, schema.Required)
	for _, name := range []string{
		"tool_name", "log_message", "ai_model", "tokens_used", "input_tokens", "output_tokens",
		"context_length", "duration_ms", "cost_usd", "success", "error_message", "tags",
	} {
		require.Contains(t, schema.Properties, name)
	}
}

func TestAuthMiddleware(t *testing.T) {
	next := func(context.Context, string, sdkmcp.Request) (sdkmcp.Result, error) {
		return &sdkmcp.CallToolResult{}, nil
	}
	handler := authMiddleware("secret")(next)

	request := func(auth string) *sdkmcp.CallToolRequest {
		req := callRequest(t, nil)
		header := http.Header{}
		if auth != "" {
			header.Set("Authorization", auth)
		}
		req.Extra = &sdkmcp.RequestExtra{Header: header}
		return req
	}

	_, err := handler(context.Background(), "tools/call", request("Bearer secret"))
	require.NoError(t, err)

	_, err = handler(context.Background(), "tools/call", request("Bearer wrong"))
	require.ErrorContains(t, err, "unauthorized")

	_, err = handler(context.Background(), "tools/call", request(""))
	require.ErrorContains(t, err, "missing bearer token")

	_, err = handler(context.Background(), "initialize", request(""))
	require.NoError(t, err)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen []string
	next := func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		seen = append(seen, requestIDFrom(ctx))
		return nil, nil
	}
	handler := requestIDMiddleware()(next)

	_, _ = handler(context.Background(), "tools/call", callRequest(t, nil))
	_, _ = handler(context.Background(), "tools/call", callRequest(t, nil))
	require.Len(t, seen, 2)
	require.NotEmpty(t, seen[0])
	require.NotEqual(t, seen[0], seen[1])
}
