package burrow

import (
	"errors"
	"fmt"
	"net/http"
)

// A FaultKind classifies a Fault for the error handler.
type FaultKind string

const (
	KindConfig       FaultKind = "ConfigError"
	KindError        FaultKind = "Error"
	KindInvalidInput FaultKind = "InvalidInput"
	KindNotFound     FaultKind = "NotFound"
	KindPrecondition FaultKind = "PreconditionError"
	KindStorage      FaultKind = "StorageError"
	KindTypeMismatch FaultKind = "TypeMismatch"
)

func (k FaultKind) String() string { return string(k) }

// A Fault is an error carrying a kind and a numeric code,
// which an error handler maps to an HTTP status.
//
// A Code outside the valid HTTP status range 100-999 maps to
// http.StatusInternalServerError.
type Fault struct {
	Kind    FaultKind
	Message string
	Code    int
	Err     error
}

// NewFault constructs a *Fault.
func NewFault(kind FaultKind, code int, msg string) *Fault {
	return &Fault{Kind: kind, Message: msg, Code: code}
}

// NotFound constructs the *Fault raised for unmatched routes and actions.
func NotFound(msg string) *Fault {
	if msg == "" {
		msg = "Not Found"
	}

	return &Fault{Kind: KindNotFound, Message: msg, Code: http.StatusNotFound, Err: ErrNotFound}
}

// Error implements error.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s (%d)", f.Kind, f.Message, f.Code)
}

// Unwrap exposes the error the Fault classifies.
func (f *Fault) Unwrap() error { return f.Err }

// Status is the HTTP status code the Fault maps to.
func (f *Fault) Status() int {
	if f.Code >= 100 && f.Code <= 999 {
		return f.Code
	}

	return http.StatusInternalServerError
}

// AsFault classifies err into a *Fault.
//
// If err already is or wraps a *Fault, that *Fault returns.
// Otherwise, the kind and code follow from the sentinel errors err wraps.
// AsFault returns nil for a nil err.
func AsFault(err error) *Fault {
	if err == nil {
		return nil
	}

	var f *Fault
	if errors.As(err, &f) {
		return f
	}

	f = &Fault{Message: err.Error(), Err: err}
	switch {
	case errors.Is(err, ErrNotFound):
		f.Kind, f.Code = KindNotFound, http.StatusNotFound
	case errors.Is(err, ErrBadConfig):
		f.Kind, f.Code = KindConfig, http.StatusInternalServerError
	case errors.Is(err, ErrNotExist):
		f.Kind = KindPrecondition
	case errors.Is(err, ErrTypeMismatch):
		f.Kind = KindTypeMismatch
	case errors.Is(err, ErrNotValid):
		f.Kind, f.Code = KindInvalidInput, http.StatusBadRequest
	case errors.Is(err, ErrExists), errors.Is(err, ErrUnexpected):
		f.Kind = KindStorage
	default:
		f.Kind = KindError
	}

	return f
}
