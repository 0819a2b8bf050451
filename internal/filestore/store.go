package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rpggio/worklog/internal/domain/activity"
)

const (
	filePrefix = "worklog-"
	fileExt    = ".md"
)

// Store keeps one markdown file per calendar day under a root directory.
// Appends to the same day are serialised within the process; writers in
// other processes are not coordinated.
type Store struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store rooted at dir. The directory is created on first append.
func New(dir string) *Store {
	return &Store{
		root:  dir,
		locks: make(map[string]*sync.Mutex),
	}
}

// Root returns the directory holding the daily logs.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file path for dateKey.
func (s *Store) Path(dateKey string) (string, error) {
	if _, err := time.Parse(activity.DateKeyLayout, dateKey); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, dateKey)
	}
	return filepath.Join(s.root, filePrefix+dateKey+fileExt), nil
}

// Header returns the first line written to a new daily log.
func Header(dateKey string) string {
	return "# 📝 Work Log - " + dateKey
}

// Append adds line to the log for dateKey, creating the file with its header
// when absent. The whole file is rewritten through a temp file and rename, so
// a failed write leaves the previous content in place.
func (s *Store) Append(ctx context.Context, dateKey, line string) (activity.AppendResult, error) {
	path, err := s.Path(dateKey)
	if err != nil {
		return activity.AppendResult{}, &Error{Op: "resolve", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return activity.AppendResult{}, err
	}

	lock := s.lockFor(dateKey)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return activity.AppendResult{}, &Error{Op: "mkdir", Err: err}
	}

	content, err := os.ReadFile(path)
	newFile := false
	switch {
	case errors.Is(err, fs.ErrNotExist):
		newFile = true
		content = []byte(Header(dateKey) + "\n\n")
	case err != nil:
		return activity.AppendResult{}, &Error{Op: "read", Err: err}
	}

	if n := len(content); n > 0 && content[n-1] != '\n' {
		content = append(content, '\n')
	}
	content = append(content, line...)
	content = append(content, '\n')

	if err := writeFile(path, content); err != nil {
		return activity.AppendResult{}, &Error{Op: "write", Err: err}
	}

	return activity.AppendResult{NewFile: newFile, Path: path}, nil
}

func (s *Store) lockFor(dateKey string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[dateKey]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[dateKey] = lock
	}
	return lock
}

func writeFile(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
