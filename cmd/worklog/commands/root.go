package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/rpggio/worklog/internal/config"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/filestore"
	"github.com/rpggio/worklog/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the worklog command tree.
func NewRootCmd() *cobra.Command {
	var configPath, envFile string

	rootCmd := &cobra.Command{
		Use:   "worklog",
		Short: "Daily markdown worklog for AI tool activity",
		Long: `worklog records what AI coding tools did, one markdown line per activity,
in a worklog-YYYY-MM-DD.md file per day.

Examples:
  worklog serve                                   # MCP server on stdio
  worklog serve --transport http --port 8080      # MCP server over streamable HTTP
  worklog log --tool "Claude Code" --message "Fixed flaky test" --tokens 1500`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if envFile == "" {
				return nil
			}
			// Variables already set in the environment win over the file.
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load env file: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"YAML config file (default $WORKLOG_CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "",
		"Dotenv file with WORKLOG_* variables to load before reading config")

	load := func() (config.Config, error) {
		if configPath == "" {
			return config.Load()
		}
		return config.LoadFrom(configPath)
	}

	rootCmd.AddCommand(
		newServeCmd(load),
		newLogCmd(load),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

type configLoader func() (config.Config, error)

// newLogger writes to w, or to the configured log file when one is set.
// The returned func closes the file.
func newLogger(cfg config.Config, w io.Writer, stderr io.Writer) (*slog.Logger, func()) {
	closeFn := func() {}
	if cfg.Log.Path != "" {
		fileWriter, err := logging.OpenFile(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(stderr, "log file error: %v\n", err)
		} else {
			w = fileWriter
			closeFn = func() { _ = fileWriter.Close() }
		}
	}
	return logging.New(w, cfg.Log.Level), closeFn
}

func newActivityService(cfg config.Config, logger *slog.Logger) (*activity.Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return activity.NewService(
		filestore.New(cfg.Worklog.LogsDir),
		logger,
		activity.WithLocation(loc),
	), nil
}
