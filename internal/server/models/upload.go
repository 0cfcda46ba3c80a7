package models

import "time"

// Upload is a staged upload intent holding a quota reservation of Size
// bytes until it is finalized into a File or cancelled.
type Upload struct {
	ID string
	// UploadID is assigned by the blob backend once the client negotiated
	// a multipart upload.
	UploadID string
	Key      string
	Bucket   string
	Name     string
	OwnerID  string
	ParentID string
	// Size is the reserved amount, not necessarily the final file size.
	Size     uint64
	IsUpdate bool
	// FileID is the file being replaced when IsUpdate is set.
	FileID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
