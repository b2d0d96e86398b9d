// Package businessflow contains the core business logic and use cases for collection communication workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Company-related errors
	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyInactive = errors.New("company is inactive")

	// Debtor-related errors
	ErrDebtorNotFound = errors.New("debtor not found")

	// Campaign validation errors
	ErrWorkbookEmpty          = errors.New("workbook contains no rows")
	ErrMissingContactColumn   = errors.New("no recognized phone or email column")
	ErrMissingRequiredColumns = errors.New("required columns are missing")
	ErrInvalidFromNumber      = errors.New("a valid sender number is required")

	// Schedule errors
	ErrScheduleHasNoDays = errors.New("schedule has no allowed days")

	// Queue errors
	ErrAlreadyQueued = errors.New("contact attempt already queued")

	// Provider errors
	ErrProviderFailure = errors.New("provider call failed")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// Error taxonomy codes used across flows. Validation failures abort a whole
// campaign before any contact is attempted; not-found aborts one operation;
// provider failures and conflicts are recovered locally.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeProviderFailure  = "PROVIDER_FAILURE"
	CodeConflict         = "CONFLICT"
)

func IsCompanyNotFound(err error) bool {
	return errors.Is(err, ErrCompanyNotFound)
}

func IsAlreadyQueued(err error) bool {
	return errors.Is(err, ErrAlreadyQueued)
}
