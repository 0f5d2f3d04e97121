package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no user exists for the requested id.
	ErrNotFound = errors.New("user not found")
	// ErrNilUser is returned when a nil user is passed for saving.
	ErrNilUser = errors.New("nil user")
)

// Kind classifies why a write failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindConstraint
	KindConnectivity
)

func (k Kind) String() string {
	switch k {
	case KindConstraint:
		return "constraint violation"
	case KindConnectivity:
		return "connectivity"
	}
	return "unknown"
}

// Sentinels matched by errors.Is against a *SaveError of the same kind.
var (
	ErrConstraint   = errors.New("constraint violation")
	ErrConnectivity = errors.New("connectivity")
)

// SaveError reports a failed save. The transaction has been rolled back.
type SaveError struct {
	Kind Kind
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save user (%s): %v", e.Kind, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Is lets callers match on the failure kind, e.g. errors.Is(err, store.ErrConstraint).
func (e *SaveError) Is(target error) bool {
	switch target {
	case ErrConstraint:
		return e.Kind == KindConstraint
	case ErrConnectivity:
		return e.Kind == KindConnectivity
	}
	return false
}
