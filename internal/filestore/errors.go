package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rpggio/worklog/internal/domain/activity"
)

// ErrInvalidDateKey is returned for keys that are not YYYY-MM-DD dates.
var ErrInvalidDateKey = errors.New("invalid date key")

// Error reports a failed filesystem step while appending to a daily log.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s worklog: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{activity.ErrStorage, e.Err}
}

// Cause returns the underlying reason with any filesystem path stripped.
func (e *Error) Cause() string {
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		return pathErr.Err.Error()
	}
	var linkErr *os.LinkError
	if errors.As(e.Err, &linkErr) {
		return linkErr.Err.Error()
	}
	return e.Err.Error()
}
