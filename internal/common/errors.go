// Package common — errors.go defines the sentinel errors shared by every
// feature package. Handlers and the UI layer match on these to turn a failed
// mutation into a user-facing message; none of them is process-fatal.
package common

import (
	"errors"
	"fmt"
)

// Ledger errors
var (
	// ErrInsufficientPoints — a consumption exceeds the current balance
	ErrInsufficientPoints = errors.New("insufficient points")
	// ErrInvalidAmount — a zero or negative amount was passed to the ledger
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Check-in errors
var (
	// ErrAlreadyCheckedToday — a second check-in on the same calendar day
	ErrAlreadyCheckedToday = errors.New("already checked in today")
	// ErrAlreadyChecked — a makeup check-in targets a date that already has a record
	ErrAlreadyChecked = errors.New("date already has a check-in record")
	// ErrInvalidDate — a makeup check-in targets today or a future date
	ErrInvalidDate = errors.New("makeup check-in must target a past date")
)

// Catalog errors
var (
	// ErrProductNotFound — the product id does not exist
	ErrProductNotFound = errors.New("product not found")
	// ErrProductUnavailable — the product is not in active status
	ErrProductUnavailable = errors.New("product is not available")
	// ErrOutOfStock — the product has no stock left
	ErrOutOfStock = errors.New("product is out of stock")
)

// Blind box errors
var (
	// ErrBoxNotFound — the blind box id does not exist
	ErrBoxNotFound = errors.New("blind box not found")
	// ErrBoxSoldOut — the blind box has no remaining units
	ErrBoxSoldOut = errors.New("blind box is sold out")
	// ErrNoUnopenedBox — open was called without a prior unopened purchase
	ErrNoUnopenedBox = errors.New("no unopened purchase for this box")
)

// Admin errors
var (
	// ErrWrongPassword — admin password does not match ADMIN_PASSWORD_HASH
	ErrWrongPassword = errors.New("wrong admin password")
)

// Task errors
var (
	// ErrTaskNotFound — the task id does not exist
	ErrTaskNotFound = errors.New("task not found")
)

// Achievement errors
var (
	// ErrAchievementNotFound — the achievement id does not exist
	ErrAchievementNotFound = errors.New("achievement not found")
)

// ValidationError reports a rejected admin catalog write. Field names the
// offending field so the UI can highlight it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
