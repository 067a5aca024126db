package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Logger records audit events. It never blocks business logic on audit
// failures beyond returning the error: callers decide whether to ignore it.
type Logger interface {
	// Log records a successful action
	Log(ctx context.Context, action string, opts ...EventOption) error

	// LogDenied records an action rejected by an entitlement or policy check
	LogDenied(ctx context.Context, action string, opts ...EventOption) error

	// LogError records a failed action
	LogError(ctx context.Context, action string, err error, opts ...EventOption) error
}

type logger struct {
	storage Storage
}

// NewLogger creates a new audit logger. Panics if storage is nil to fail
// fast during initialization.
func NewLogger(storage Storage) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}
	return &logger{storage: storage}
}

func (l *logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	return l.store(ctx, action, ResultSuccess, nil, opts)
}

func (l *logger) LogDenied(ctx context.Context, action string, opts ...EventOption) error {
	return l.store(ctx, action, ResultDenied, nil, opts)
}

func (l *logger) LogError(ctx context.Context, action string, err error, opts ...EventOption) error {
	return l.store(ctx, action, ResultError, err, opts)
}

func (l *logger) store(ctx context.Context, action string, result Result, cause error, opts []EventOption) error {
	event := Event{
		ID:        uuid.New().String(),
		Action:    action,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	if err := l.storage.Store(ctx, event); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}
