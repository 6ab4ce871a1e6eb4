package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archive-alert/internal/domain"
	"github.com/archive-alert/internal/domain/repository"
)

type activityLog struct {
	path string
}

// NewActivityLog appends search lines to a plain text file. No rotation.
func NewActivityLog(path string) repository.ActivityLogRepository {
	return &activityLog{path: path}
}

func (l *activityLog) Append(ctx context.Context, entry domain.LogEntry) error {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log dir: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, entry.Line()); err != nil {
		return fmt.Errorf("failed to append log line: %w", err)
	}

	return nil
}
