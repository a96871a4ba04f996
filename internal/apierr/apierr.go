package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation        = "validation_error"
	CodeUnauthorized      = "unauthorized"
	CodeUpstreamConfig    = "upstream_config"
	CodeUpstreamFormat    = "upstream_format"
	CodeUpstream          = "upstream_error"
	CodeEntitlementDenied = "entitlement_denied"
	CodeStorage           = "storage_error"
)

// Error is the API-facing error shape. Raw carries the offending upstream
// payload for upstream_format failures so callers can surface it for
// diagnostics.
type Error struct {
	Status int
	Code   string
	Err    error
	Raw    string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(err error) *Error {
	return New(http.StatusBadRequest, CodeValidation, err)
}

func UpstreamConfig(err error) *Error {
	return New(http.StatusInternalServerError, CodeUpstreamConfig, err)
}

func UpstreamFormat(err error, raw string) *Error {
	e := New(http.StatusBadGateway, CodeUpstreamFormat, err)
	e.Raw = raw
	return e
}

func Upstream(err error) *Error {
	return New(http.StatusBadGateway, CodeUpstream, err)
}

// EntitlementDenied carries the human-readable reason as the error message.
// "already generated" maps to 409, "paid feature" to 402.
func EntitlementDenied(status int, reason string) *Error {
	return New(status, CodeEntitlementDenied, errors.New(reason))
}

func Storage(err error) *Error {
	return New(http.StatusInternalServerError, CodeStorage, err)
}

// From returns err as *Error when it is one (directly or wrapped), else nil.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
