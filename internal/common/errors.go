package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Entry lifecycle errors
	ErrEntryNotFound          = errors.New("entry not found")
	ErrInvalidTransition      = errors.New("invalid lifecycle transition")
	ErrConcurrentModification = errors.New("entry was modified concurrently")
	ErrSnapshotNotFound       = errors.New("snapshot not found")

	// Scheduling errors
	ErrInvalidSchedule         = errors.New("invalid schedule")
	ErrScheduledActionNotFound = errors.New("scheduled action not found")
	ErrScheduleExecutionFailed = errors.New("scheduled action execution failed")

	// Space / environment errors
	ErrSpaceNotFound       = errors.New("space not found")
	ErrSpaceSuspended      = errors.New("space is suspended")
	ErrEnvironmentNotFound = errors.New("environment not found")
	ErrContentTypeNotFound = errors.New("content type not found")
	ErrSubdomainTaken      = errors.New("subdomain already taken")
	ErrInvalidSubdomain    = errors.New("invalid subdomain format")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
