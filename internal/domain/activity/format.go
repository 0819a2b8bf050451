package activity

import (
	"fmt"
	"strings"
	"time"
)

const (
	GlyphSuccess = "✅"
	GlyphFailure = "❌"

	// DateKeyLayout names a daily log file.
	DateKeyLayout   = "2006-01-02"
	timeLabelLayout = "15:04"
)

// DateKey returns the daily log key for t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Render formats rec as a single markdown list item. capturedAt supplies the
// time label and is formatted in its own location.
func Render(rec Record, capturedAt time.Time) Entry {
	var b strings.Builder
	b.WriteString(capturedAt.Format(timeLabelLayout))
	b.WriteString(" - ")
	b.WriteString(rec.ToolName)
	if model := stringValue(rec.Model); model != "" {
		b.WriteString(" (")
		b.WriteString(model)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(rec.Message)

	if meta := metadata(rec); len(meta) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(meta, " | "))
		b.WriteString(")")
	}

	body := b.String()
	glyph := GlyphSuccess
	if !rec.Success {
		glyph = GlyphFailure
	}
	return Entry{
		Line: "- " + glyph + " " + body,
		Body: body,
	}
}

func metadata(rec Record) []string {
	var meta []string

	if rec.TokensTotal != nil {
		meta = append(meta, fmt.Sprintf("%d tokens", *rec.TokensTotal))
	} else if rec.TokensIn != nil || rec.TokensOut != nil {
		in, out := int64Value(rec.TokensIn), int64Value(rec.TokensOut)
		meta = append(meta, fmt.Sprintf("%d tokens (%d→%d)", in+out, in, out))
	}

	if rec.ContextLengthK != nil {
		meta = append(meta, fmt.Sprintf("%dk ctx", *rec.ContextLengthK))
	}

	if rec.DurationMs != nil {
		meta = append(meta, formatDuration(*rec.DurationMs))
	}

	if rec.CostUSD != nil {
		meta = append(meta, fmt.Sprintf("$%.4f", *rec.CostUSD))
	}

	if !rec.Success {
		if msg := stringValue(rec.ErrorMessage); msg != "" {
			meta = append(meta, GlyphFailure+" "+msg)
		}
	}

	if len(rec.Tags) > 0 {
		meta = append(meta, "["+strings.Join(rec.Tags, ", ")+"]")
	}

	return meta
}

// formatDuration renders sub-second durations in milliseconds and longer ones
// in seconds with one decimal, rounding halves up.
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	tenths := (ms + 50) / 100
	return fmt.Sprintf("%d.%ds", tenths/10, tenths%10)
}

func stringValue(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}

func int64Value(val *int64) int64 {
	if val == nil {
		return 0
	}
	return *val
}
