package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrInvalidField  = errors.New("invalid order field")
	// ErrStoreUnavailable marks a transient repository failure; callers retry
	// a bounded number of times before surfacing a generic failure.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDailyLimitExceeded rejects creation once the manager hit the per-day
	// order cap.
	ErrDailyLimitExceeded = errors.New("daily order limit exceeded")
)

// ParseReason classifies submission parse failures.
type ParseReason string

const (
	ParseWrongFieldCount ParseReason = "wrong_field_count"
	ParseInvalidField    ParseReason = "invalid_field"
)

// ParseError signals malformed user input. Recovered at the chat boundary by
// echoing a format prompt; never fatal.
type ParseError struct {
	Reason ParseReason
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("parse error: %s", e.Reason)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Reason, e.Detail)
}

// NewParseError builds a ParseError with a human readable detail.
func NewParseError(reason ParseReason, detail string) *ParseError {
	return &ParseError{Reason: reason, Detail: detail}
}

// IsParseError extracts a ParseError from err when present.
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// DuplicateOrderError is a decision point, not a failure: the candidate
// submission matches an existing order inside the duplicate window.
type DuplicateOrderError struct {
	MatchedID int64
}

func (e *DuplicateOrderError) Error() string {
	return fmt.Sprintf("duplicate of order #%d", e.MatchedID)
}

// IsDuplicate extracts a DuplicateOrderError from err when present.
func IsDuplicate(err error) (*DuplicateOrderError, bool) {
	var de *DuplicateOrderError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
