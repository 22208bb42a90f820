package booking

import (
	"errors"
	"fmt"
)

// ===============================
// Error taxonomy
// ===============================

type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindStateConflict
	KindDoubleBooking
	KindConcurrency
)

// DomainError is the single error type crossing the core boundary:
// a machine-readable code plus a human-readable message.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func newValidationError(code, format string, args ...any) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func newStateError(code, format string, args ...any) *DomainError {
	return &DomainError{Kind: KindStateConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(code, format string, args ...any) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(code, format string, args ...any) *DomainError {
	return &DomainError{Kind: KindDoubleBooking, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewValidationError(code, format string, args ...any) *DomainError {
	return newValidationError(code, format, args...)
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// CodeOf extracts the domain error code, or "" for foreign errors.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

var (
	errSlotEndBeforeStart = newValidationError("slot_invalid", "slot end must be after start")
	errSlotInPast         = newValidationError("slot_in_past", "slot cannot be in the past")

	// ErrVersionConflict is returned by the persistence layer when a save
	// loses an optimistic-concurrency race. Distinct from generic save
	// failures so callers can suggest a refresh-and-retry.
	ErrVersionConflict = &DomainError{
		Kind:    KindConcurrency,
		Code:    "version_conflict",
		Message: "booking was modified by another operation, please refresh and retry",
	}
)
