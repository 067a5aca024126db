package audit

import "errors"

var (
	// ErrEventValidation indicates the event is missing required fields.
	ErrEventValidation = errors.New("audit event validation failed")

	// ErrStorageFailure indicates the storage backend rejected the event.
	ErrStorageFailure = errors.New("audit storage failure")
)
