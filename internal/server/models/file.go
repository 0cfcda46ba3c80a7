// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/dmitrijs2005/filemeta/internal/common"
)

// Kind tags a file tree node.
type Kind string

const (
	KindRegular  Kind = "regular"
	KindFolder   Kind = "folder"
	KindShortcut Kind = "shortcut"
)

// KindForType derives the node kind from its wire type.
func KindForType(fileType string) Kind {
	switch fileType {
	case common.FolderType:
		return KindFolder
	case common.ShortcutType:
		return KindShortcut
	default:
		return KindRegular
	}
}

// File is a node of an owner's file tree. Optional references (Key, Bucket,
// ParentID, TargetID) are empty when absent.
type File struct {
	ID          string
	Key         string
	Bucket      string
	Name        string
	Type        string
	Kind        Kind
	Description string
	OwnerID     string
	Size        uint64
	// ParentID is empty only for root folders.
	ParentID string
	// TargetID points at the referenced node of a shortcut.
	TargetID     string
	IsRootFolder bool
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (f *File) IsFolder() bool {
	return f.Kind == KindFolder
}

// FileUpdate is a partial change set; nil fields are left untouched.
type FileUpdate struct {
	Name        *string
	Size        *uint64
	ParentID    *string
	Bucket      *string
	Key         *string
	Description *string
}

// Empty reports whether u changes nothing.
func (u *FileUpdate) Empty() bool {
	return u.Name == nil && u.Size == nil && u.ParentID == nil &&
		u.Bucket == nil && u.Key == nil && u.Description == nil
}

// Apply copies the set fields of u onto f.
func (u *FileUpdate) Apply(f *File) {
	if u.Name != nil {
		f.Name = *u.Name
	}
	if u.Size != nil {
		f.Size = *u.Size
	}
	if u.ParentID != nil {
		f.ParentID = *u.ParentID
	}
	if u.Bucket != nil {
		f.Bucket = *u.Bucket
	}
	if u.Key != nil {
		f.Key = *u.Key
	}
	if u.Description != nil {
		f.Description = *u.Description
	}
}
