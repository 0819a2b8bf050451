package mocks

import (
	"context"

	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/stretchr/testify/mock"
)

// Store is a mock for activity.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Append(ctx context.Context, dateKey, line string) (activity.AppendResult, error) {
	args := m.Called(ctx, dateKey, line)
	if res, ok := args.Get(0).(activity.AppendResult); ok {
		return res, args.Error(1)
	}
	return activity.AppendResult{}, args.Error(1)
}
