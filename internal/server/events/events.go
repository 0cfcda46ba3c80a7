// Package events publishes domain events of the file service to an AMQP
// topic exchange. Events are informational: consumers index them, and
// quota.reconcile events drive manual ledger repair.
package events

import (
	"context"
	"time"
)

// Type is also used as the routing key.
type Type string

const (
	UploadCreated   Type = "upload.created"
	UploadCancelled Type = "upload.cancelled"
	FileCreated     Type = "file.created"
	FileUpdated     Type = "file.updated"
	FileDeleted     Type = "file.deleted"
	QuotaReconcile  Type = "quota.reconcile"
)

type Event struct {
	Type     Type   `json:"type"`
	OwnerID  string `json:"owner_id"`
	FileID   string `json:"file_id,omitempty"`
	UploadID string `json:"upload_id,omitempty"`
	Key      string `json:"key,omitempty"`
	Bucket   string `json:"bucket,omitempty"`
	Size     uint64 `json:"size,omitempty"`
	// Amount is the quota delta a reconciliation must apply.
	Amount    int64  `json:"amount,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher sends events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func stamp(e *Event) {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}
}
