package common

import "errors"

// Stable error kinds reported to callers.
const (
	ReasonFileNotFound           = "FILE_NOT_FOUND"
	ReasonUploadNotFound         = "UPLOAD_NOT_FOUND"
	ReasonFileExistsWithSameName = "FILE_EXISTS_WITH_SAME_NAME"
	ReasonKeyAlreadyExists       = "KEY_ALREADY_EXISTS"
	ReasonIDInvalid              = "ID_INVALID"
	ReasonValidation             = "VALIDATION_FAILED"
	ReasonParentNotFolder        = "PARENT_NOT_FOLDER"
	ReasonInvalidMove            = "INVALID_MOVE"
	ReasonQuotaExceeded          = "QUOTA_EXCEEDED"
	ReasonInternal               = "INTERNAL"
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrFileNotFound, ReasonFileNotFound},
	{ErrUploadNotFound, ReasonUploadNotFound},
	{ErrFileExistsWithSameName, ReasonFileExistsWithSameName},
	{ErrKeyAlreadyExists, ReasonKeyAlreadyExists},
	{ErrIDInvalid, ReasonIDInvalid},
	{ErrValidation, ReasonValidation},
	{ErrParentNotFolder, ReasonParentNotFolder},
	{ErrInvalidMove, ReasonInvalidMove},
	{ErrQuotaExceeded, ReasonQuotaExceeded},
}

// Reason returns the stable kind of err. Anything that is not a client or
// resource-exhaustion error is reported as ReasonInternal.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonInternal
}

// IsClientError reports whether err is caused by the caller's request and
// may be surfaced with its message.
func IsClientError(err error) bool {
	return Reason(err) != ReasonInternal
}

// ErrorOf returns the sentinel error reported under reason, or nil for
// ReasonInternal and unknown reasons.
func ErrorOf(reason string) error {
	for _, r := range reasons {
		if r.reason == reason {
			return r.err
		}
	}
	return nil
}
