package activity

import "time"

// Record describes one tool invocation to be journaled.
type Record struct {
	ToolName       string
	Message        string
	Model          *string
	TokensTotal    *int64
	TokensIn       *int64
	TokensOut      *int64
	ContextLengthK *int64
	DurationMs     *int64
	CostUSD        *float64
	Success        bool
	ErrorMessage   *string
	Tags           []string
}

// Entry is a rendered record.
type Entry struct {
	// Line is the full markdown list item, without a trailing newline.
	Line string
	// Body is Line without the list marker and status glyph.
	Body string
}

// Result describes a completed log_activity call.
type Result struct {
	Entry      Entry
	DateKey    string
	NewFile    bool
	CapturedAt time.Time
}

// Confirmation returns the caller-facing success text.
func (r *Result) Confirmation() string {
	msg := GlyphSuccess + " Activity logged: " + r.Entry.Body
	if r.NewFile {
		msg += " (new file created)"
	}
	return msg
}

// AppendResult reports what a store did with an appended line.
type AppendResult struct {
	NewFile bool
	Path    string
}
