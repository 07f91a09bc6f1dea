package initdata

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPayload     = errors.New("init data is empty")
	ErrMalformedField   = errors.New("malformed field")
	ErrMissingHash      = errors.New("hash is missing")
	ErrMissingAuthDate  = errors.New("auth_date is missing")
	ErrMissingSignature = errors.New("signature is missing")
	ErrInvalidSignature = errors.New("signature is invalid")
	ErrExpired          = errors.New("init data is expired")
	ErrEmptyToken       = errors.New("token is empty")

	ErrInvalidInteger  = errors.New("invalid integer")
	ErrInvalidJSON     = errors.New("invalid json")
	ErrMissingSubfield = errors.New("missing required subfield")
	ErrUnknownChatType = errors.New("unknown chat type")
)

// FieldError reports a failure tied to a named field. It matches its Kind
// with errors.Is, and the underlying cause when there is one.
type FieldError struct {
	Kind     error
	Field    string
	Subfield string
	Err      error
}

func (e *FieldError) Error() string {
	name := e.Field
	if e.Subfield != "" {
		name += "." + e.Subfield
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", name, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", name, e.Kind)
}

func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fieldErr(kind error, field string, cause error) error {
	return &FieldError{Kind: kind, Field: field, Err: cause}
}

// IsTrustError reports whether err means the payload could not be trusted,
// as opposed to a trusted payload with an unexpected shape.
func IsTrustError(err error) bool {
	switch {
	case errors.Is(err, ErrMissingHash),
		errors.Is(err, ErrMissingAuthDate),
		errors.Is(err, ErrMissingSignature),
		errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrExpired):
		return true
	}
	return false
}

// Kind returns a short stable label for err, suitable for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyPayload):
		return "empty_payload"
	case errors.Is(err, ErrMalformedField):
		return "malformed_field"
	case errors.Is(err, ErrMissingHash):
		return "missing_hash"
	case errors.Is(err, ErrMissingAuthDate):
		return "missing_auth_date"
	case errors.Is(err, ErrMissingSignature):
		return "missing_signature"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrInvalidInteger):
		return "invalid_integer"
	case errors.Is(err, ErrInvalidJSON):
		return "invalid_json"
	case errors.Is(err, ErrMissingSubfield):
		return "missing_subfield"
	case errors.Is(err, ErrUnknownChatType):
		return "unknown_chat_type"
	case errors.Is(err, ErrEmptyToken):
		return "empty_token"
	default:
		return "internal"
	}
}
