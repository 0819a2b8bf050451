package activity

import "context"

// Store persists rendered entries into per-day logs.
type Store interface {
	Append(ctx context.Context, dateKey, line string) (AppendResult, error)
}
