package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed content-API call by the operation that failed.
type ErrorKind int

const (
	KindAuthentication ErrorKind = iota + 1
	KindFetch
	KindCreate
	KindUpdate
	KindDelete
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindFetch:
		return "fetch"
	case KindCreate:
		return "create"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against an *APIError's kind.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrFetch          = errors.New("fetch failed")
	ErrCreate         = errors.New("create failed")
	ErrUpdate         = errors.New("update failed")
	ErrDelete         = errors.New("delete failed")

	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// APIError is returned by every content-API call that fails, either because the
// transport failed (Status == 0) or because the API answered with a non-2xx status.
type APIError struct {
	Kind       ErrorKind
	Op         string
	Status     int
	StatusText string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s (%d %s): %v", e.Op, e.Kind, e.Status, e.StatusText, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (%d %s)", e.Op, e.Kind, e.Status, e.StatusText)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.Kind == KindAuthentication
	case ErrFetch:
		return e.Kind == KindFetch
	case ErrCreate:
		return e.Kind == KindCreate
	case ErrUpdate:
		return e.Kind == KindUpdate
	case ErrDelete:
		return e.Kind == KindDelete
	}
	return false
}

// PartialFailureError reports a two-step write whose second step failed after
// the first had been persisted. Compensated tells whether the first step's
// record was removed again.
type PartialFailureError struct {
	Op          string
	Step        string
	Compensated bool
	Err         error
}

func (e *PartialFailureError) Error() string {
	state := "not compensated"
	if e.Compensated {
		state = "compensated"
	}
	return fmt.Sprintf("%s: partial failure at %s (%s): %v", e.Op, e.Step, state, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// IsPartialFailure reports whether err is or wraps a *PartialFailureError.
func IsPartialFailure(err error) bool {
	var pf *PartialFailureError
	return errors.As(err, &pf)
}
