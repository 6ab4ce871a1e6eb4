package worker

import (
	"context"
)

// Worker - фоновая задача под управлением WorkerManager
type Worker interface {
	// Start blocks until the worker stops. Returning nil or context.Canceled
	// is a clean stop; any other error is reported by WorkerManager.Err.
	Start(ctx context.Context) error

	// Stop просит воркер завершиться; повторный вызов ничего не делает
	Stop() error

	// Name is used in logs and in the error reported by the manager
	Name() string
}
