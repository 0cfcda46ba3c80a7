// Package common defines shared constants and sentinel errors used across
// client and server layers of filemeta. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Client errors: the request is invalid given the current state.
	ErrFileNotFound           = errors.New("file not found")
	ErrUploadNotFound         = errors.New("upload not found")
	ErrFileExistsWithSameName = errors.New("file with the same name already exists in folder")
	ErrKeyAlreadyExists       = errors.New("key already exists")
	ErrIDInvalid              = errors.New("id is invalid")
	ErrValidation             = errors.New("validation error")
	ErrParentNotFolder        = errors.New("parent is not a folder")
	ErrInvalidMove            = errors.New("folder cannot be moved into itself or its descendant")

	// Resource exhaustion.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// Service-level errors (internal flow control and invariants).
	ErrorInternal          = errors.New("internal error")
	ErrorUnauthorized      = errors.New("unauthorized")
	ErrNoKeySent           = errors.New("no key sent")
	ErrNegativeUsage       = errors.New("negative used quota")
	ErrQuotaContention     = errors.New("quota update contention")
	ErrQuotaReconciliation = errors.New("quota release failed after upload deletion")

	// Auth errors (invalid, expired or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
