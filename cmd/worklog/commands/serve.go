package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/config"
	"github.com/rpggio/worklog/internal/mcp"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	transport string
	host      string
	port      int
	logsDir   string
	logLevel  string
	timezone  string
}

func newServeCmd(load configLoader) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Run the MCP server exposing the log_activity tool.

Stdio is the default transport. Flags override the config file and environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			opts.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return runServe(cmd, cfg)
		},
	}

	opts.addFlags(cmd)
	return cmd
}

func (o *serveOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.transport, "transport", config.TransportStdio, "Transport mode (stdio, http)")
	flags.StringVar(&o.host, "host", "", "HTTP listen host")
	flags.IntVar(&o.port, "port", 0, "HTTP listen port")
	flags.StringVar(&o.logsDir, "logs-dir", "", "Directory holding the daily worklog files")
	flags.StringVar(&o.logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	flags.StringVar(&o.timezone, "timezone", "", "Time zone for dates and times (e.g. Local, UTC, Europe/Berlin)")
}

// apply overrides cfg with the flags set on the command line.
func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Transport.Mode = o.transport
	}
	if flags.Changed("host") {
		cfg.Server.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = o.port
	}
	if flags.Changed("logs-dir") {
		cfg.Worklog.LogsDir = o.logsDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("timezone") {
		cfg.Worklog.Timezone = o.timezone
	}
}

func runServe(cmd *cobra.Command, cfg config.Config) error {
	stderr := cmd.ErrOrStderr()

	// Stdout carries JSON-RPC in stdio mode.
	logWriter := cmd.OutOrStdout()
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = stderr
	}
	logger, closeLog := newLogger(cfg, logWriter, stderr)
	defer closeLog()

	svc, err := newActivityService(cfg, logger)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(mcp.Config{
		Activity:      svc,
		AuthToken:     cfg.Auth.Token,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Transport.Mode == config.TransportStdio {
		return runStdio(ctx, logger, server, cfg, stderr)
	}
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	return runHTTP(ctx, logger, server, addr, cfg.Auth.Enabled())
}

func runStdio(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server, cfg config.Config, stderr io.Writer) error {
	logger.Info("starting stdio transport", "logs_dir", cfg.Worklog.LogsDir, "timezone", cfg.Worklog.Timezone)
	fmt.Fprintln(stderr, "MCP Work History Server running on stdio")

	// Run blocks until stdin closes or the context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server, addr string, auth bool) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mcp.NewHTTPHandler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "auth", auth)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
