package bizerror

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrStateInvalid    = errors.New("invalid state")

	ErrBackendUnavailable     = errors.New("database connection not available")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrTooManyAttempts        = errors.New("too many attempts")
)

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}

// ErrSequence reports a failed work order number allocation. The work order is never written.
type ErrSequence struct {
	Cause error
}

func (e *ErrSequence) Unwrap() error {
	return e.Cause
}
func (e *ErrSequence) Error() string {
	return "failed to generate work order number: " + e.Cause.Error()
}
func (e *ErrSequence) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusServiceUnavailable, Code: "workorder.sequence_failed",
		Message: "failed to generate work order number", Cause: e.Cause}
}
