package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service validates, renders and stores activity records.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
	loc    *time.Location
}

// NewService creates a new activity service.
func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogActivity appends rec to the current day's log. The clock is read once so
// the date key and time label always agree.
func (s *Service) LogActivity(ctx context.Context, rec Record) (*Result, error) {
	if err := Validate(rec); err != nil {
		return nil, err
	}

	capturedAt := s.now().In(s.loc)
	dateKey := DateKey(capturedAt)
	entry := Render(rec, capturedAt)

	appended, err := s.store.Append(ctx, dateKey, entry.Line)
	if err != nil {
		return nil, fmt.Errorf("appending activity: %w", err)
	}
	if appended.NewFile {
		s.logger.Info("created daily worklog", "date", dateKey)
	}
	s.logger.Debug("activity logged", "date", dateKey, "tool", rec.ToolName, "success", rec.Success)

	return &Result{
		Entry:      entry,
		DateKey:    dateKey,
		NewFile:    appended.NewFile,
		CapturedAt: capturedAt,
	}, nil
}
