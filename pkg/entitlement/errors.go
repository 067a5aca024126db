package entitlement

import (
	"errors"
	"fmt"
)

// Domain errors for entitlement operations
var (
	ErrUnknownTier     = errors.New("unknown subscription tier")
	ErrUnknownFeature  = errors.New("unknown feature key")
	ErrInvalidCatalog  = errors.New("invalid tier catalog configuration")
	ErrCatalogNotTotal = errors.New("tier catalog is missing a tier")

	ErrFeatureNotAvailable = errors.New("feature not available on current plan")
	ErrLimitReached        = errors.New("plan limit reached")

	ErrUnknownOperation         = errors.New("operation not registered")
	ErrFailedToLoadCatalog      = errors.New("failed to load tier catalog")
	ErrFailedToCountUsage       = errors.New("failed to count feature usage")
	ErrNoCounterRegistered      = errors.New("no usage counter registered for feature")
	ErrNonNumericFeatureCounted = errors.New("usage check on non-numeric feature")
)

// DeniedError is the forbidden signal raised by the enforcement adapter.
// Its Error() text is the user-facing upgrade message so callers can surface
// it directly; Unwrap exposes the sentinel for errors.Is branching.
type DeniedError struct {
	Feature Feature
	Tier    Tier
	Reason  error  // ErrFeatureNotAvailable or ErrLimitReached
	Message string // canned upgrade copy
}

func (e *DeniedError) Error() string {
	return e.Message
}

func (e *DeniedError) Unwrap() error {
	return e.Reason
}

func newDenied(tier Tier, f Feature, reason error, msg string) *DeniedError {
	return &DeniedError{Feature: f, Tier: tier, Reason: reason, Message: msg}
}

// IsDenied reports whether err is an entitlement denial of either kind,
// and returns the typed error when it is.
func IsDenied(err error) (*DeniedError, bool) {
	var denied *DeniedError
	if errors.As(err, &denied) {
		return denied, true
	}
	return nil, false
}

func invalidCatalog(format string, args ...any) error {
	return errors.Join(ErrInvalidCatalog, fmt.Errorf(format, args...))
}
