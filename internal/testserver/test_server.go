package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/config"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/filestore"
	"github.com/rpggio/worklog/internal/mcp"
	"github.com/stretchr/testify/require"
)

// TestServer is a worklog MCP server backed by a temporary logs directory
// with a client session already connected to it.
type TestServer struct {
	Dir     string
	Clock   *Clock
	Session *sdkmcp.ClientSession
	HTTP    *httptest.Server
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// New connects a client to the server over in-memory transports.
func New(t *testing.T, start time.Time) *TestServer {
	t.Helper()

	ts, server := build(t, start, "", config.TransportStdio)
	ctx := context.Background()

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	session, err := newClient().Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	ts.Session = session

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return ts
}

// NewHTTP serves the streamable HTTP handler and connects a client that
// presents token as its bearer credential. An empty serverToken disables auth.
func NewHTTP(t *testing.T, start time.Time, serverToken, token string) *TestServer {
	t.Helper()

	ts, server := build(t, start, serverToken, config.TransportHTTP)
	ts.HTTP = httptest.NewServer(mcp.NewHTTPHandler(server))
	t.Cleanup(ts.HTTP.Close)

	transport := &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.HTTP.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: token}},
	}
	session, err := newClient().Connect(context.Background(), transport, nil)
	require.NoError(t, err)
	ts.Session = session
	t.Cleanup(func() { _ = session.Close() })
	return ts
}

func build(t *testing.T, start time.Time, token, mode string) (*TestServer, *sdkmcp.Server) {
	t.Helper()

	ts := &TestServer{
		Dir:   filepath.Join(t.TempDir(), "logs"),
		Clock: &Clock{now: start},
	}
	svc := activity.NewService(filestore.New(ts.Dir), nil,
		activity.WithClock(ts.Clock.Now),
		activity.WithLocation(start.Location()),
	)
	server, err := mcp.NewServer(mcp.Config{
		Activity:      svc,
		AuthToken:     token,
		TransportMode: mode,
	})
	require.NoError(t, err)
	return ts, server
}

func newClient() *sdkmcp.Client {
	return sdkmcp.NewClient(&sdkmcp.Implementation{Name: "worklog-test", Version: "0.0.0"}, nil)
}

// LogActivity calls the log_activity tool with args.
func (ts *TestServer) LogActivity(t *testing.T, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "log_activity",
		Arguments: args,
	})
	require.NoError(t, err)
	return res
}

// ReadLog returns the contents of the worklog file for dateKey.
func (ts *TestServer) ReadLog(t *testing.T, dateKey string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ts.Dir, "worklog-"+dateKey+".md"))
	require.NoError(t, err)
	return string(data)
}

type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.token == "" {
		return http.DefaultTransport.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}
