package commands

import (
	"errors"
	"fmt"

	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/mcp"
	"github.com/spf13/cobra"
)

type logOptions struct {
	tool         string
	message      string
	model        string
	tokens       int64
	inputTokens  int64
	outputTokens int64
	contextK     int64
	durationMs   int64
	cost         float64
	failed       bool
	errorMessage string
	tags         []string
	logsDir      string
	timezone     string
}

func newLogCmd(load configLoader) *cobra.Command {
	opts := &logOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append one activity to today's worklog",
		Long: `Append one activity to today's worklog without running a server.

Examples:
  worklog log --tool "Claude Code" --message "Implemented feature X" --model claude-3-sonnet --tokens 1500
  worklog log --tool Cursor --message "Refactor failed" --failed --error "type check errors"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if cmd.Flags().Changed("logs-dir") {
				cfg.Worklog.LogsDir = opts.logsDir
			}
			if cmd.Flags().Changed("timezone") {
				cfg.Worklog.Timezone = opts.timezone
			}

			logger, closeLog := newLogger(cfg, cmd.ErrOrStderr(), cmd.ErrOrStderr())
			defer closeLog()

			svc, err := newActivityService(cfg, logger)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}

			res, err := svc.LogActivity(cmd.Context(), opts.record(cmd))
			if err != nil {
				return errors.New(activity.GlyphFailure + " Error logging activity: " + mcp.MapError(err).Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Confirmation())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.tool, "tool", "", "Name of the AI tool (required)")
	flags.StringVarP(&opts.message, "message", "m", "", "What was done (required)")
	flags.StringVar(&opts.model, "model", "", "AI model used")
	flags.Int64Var(&opts.tokens, "tokens", 0, "Total tokens used")
	flags.Int64Var(&opts.inputTokens, "input-tokens", 0, "Input tokens")
	flags.Int64Var(&opts.outputTokens, "output-tokens", 0, "Output tokens")
	flags.Int64Var(&opts.contextK, "context", 0, "Context length in thousands of tokens")
	flags.Int64Var(&opts.durationMs, "duration-ms", 0, "Duration in milliseconds")
	flags.Float64Var(&opts.cost, "cost", 0, "Cost in USD")
	flags.BoolVar(&opts.failed, "failed", false, "Mark the activity as failed")
	flags.StringVar(&opts.errorMessage, "error", "", "Error message for a failed activity")
	flags.StringSliceVar(&opts.tags, "tags", nil, "Comma-separated tags")
	flags.StringVar(&opts.logsDir, "logs-dir", "", "Directory holding the daily worklog files")
	flags.StringVar(&opts.timezone, "timezone", "", "Time zone for dates and times")
	return cmd
}

// record maps flags onto a Record, leaving unset flags absent.
func (o *logOptions) record(cmd *cobra.Command) activity.Record {
	flags := cmd.Flags()
	rec := activity.Record{
		ToolName: o.tool,
		Message:  o.message,
		Success:  !o.failed,
		Tags:     o.tags,
	}
	if flags.Changed("model") {
		rec.Model = &o.model
	}
	if flags.Changed("tokens") {
		rec.TokensTotal = &o.tokens
	}
	if flags.Changed("input-tokens") {
		rec.TokensIn = &o.inputTokens
	}
	if flags.Changed("output-tokens") {
		rec.TokensOut = &o.outputTokens
	}
	if flags.Changed("context") {
		rec.ContextLengthK = &o.contextK
	}
	if flags.Changed("duration-ms") {
		rec.DurationMs = &o.durationMs
	}
	if flags.Changed("cost") {
		rec.CostUSD = &o.cost
	}
	if flags.Changed("error") {
		rec.ErrorMessage = &o.errorMessage
	}
	return rec
}
