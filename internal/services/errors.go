package services

import "errors"

// Failure kinds reported by the services. All are recoverable by the caller;
// handlers translate them into static, non-leaking messages.
var (
	// ErrNotFound covers both a missing listing and a listing owned by a
	// different organization. The two cases are deliberately
	// indistinguishable so callers cannot probe other tenants' rows.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied means the caller is authenticated but lacks the
	// required capability in its organization context.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrQuotaExceeded means the transition is valid and authorized but
	// blocked by the organization's plan limits.
	ErrQuotaExceeded = errors.New("plan quota exceeded")

	// ErrInvalidTransition rejects featuring a listing that is not published.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrValidation rejects malformed input before any read or write.
	ErrValidation = errors.New("validation failed")
)
