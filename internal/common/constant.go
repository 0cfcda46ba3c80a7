// Package common contains shared constants and sentinel errors used across
// filemeta components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// service token on outbound requests.
const AccessTokenHeaderName = "access_token"

const (
	// FolderType is the reserved file type that marks a folder node.
	FolderType = "folder"
	// ShortcutType is the reserved file type that marks a shortcut node.
	ShortcutType = "shortcut"
)

// ErrorDomain is reported in error details attached to gRPC statuses.
const ErrorDomain = "filemeta"
