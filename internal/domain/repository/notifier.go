package repository

import (
	"context"

	"github.com/archive-alert/internal/domain"
)

// Notifier sends a new-scenes notification. Failures are reported through
// the result, never as a panic or error return.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) domain.NotifyResult
}
