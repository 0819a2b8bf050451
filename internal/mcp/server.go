package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "mcp-work-history"
	ServerVersion = "1.0.0"

	transportHTTP = "http"
)

// Config contains server configuration.
type Config struct {
	Activity      ActivityService
	AuthToken     string // HTTP only; empty disables auth
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) (*sdkmcp.Server, error) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Middleware passed in one call runs first to last.
	var receiving []sdkmcp.Middleware
	// Stdio is local only; HTTP checks the bearer token when one is configured.
	if cfg.TransportMode == transportHTTP && cfg.AuthToken != "" {
		receiving = append(receiving, authMiddleware(cfg.AuthToken))
	}
	receiving = append(receiving,
		requestIDMiddleware(),
		trafficLoggingMiddleware(cfg.Logger, "inbound"),
	)
	server.AddReceivingMiddleware(receiving...)
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	if err := registerTools(server, NewHandler(cfg.Activity, cfg.Logger)); err != nil {
		return nil, err
	}

	return server, nil
}
