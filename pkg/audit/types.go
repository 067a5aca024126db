package audit

import (
	"fmt"
	"time"
)

// Result represents the outcome of an audited action
type Result string

const (
	ResultSuccess Result = "success"
	ResultDenied  Result = "denied"
	ResultError   Result = "error"
)

// Event represents a single audit log entry
type Event struct {
	ID        string         `json:"id"`
	AccountID string         `json:"account_id,omitempty"`
	Action    string         `json:"action"`
	Feature   string         `json:"feature,omitempty"`
	Tier      string         `json:"tier,omitempty"`
	Result    Result         `json:"result"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Validate checks if the event has all required fields
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	return nil
}

// EventOption applies configuration to an Event during creation.
type EventOption func(*Event)

// WithAccountID attaches the acting account to the event.
func WithAccountID(id string) EventOption {
	return func(e *Event) { e.AccountID = id }
}

// WithFeature records the feature key involved in the action.
func WithFeature(feature string) EventOption {
	return func(e *Event) { e.Feature = feature }
}

// WithTier records the tier the action was evaluated against.
func WithTier(tier string) EventOption {
	return func(e *Event) { e.Tier = tier }
}

// WithMetadata adds one metadata entry, allocating the map lazily.
func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}
