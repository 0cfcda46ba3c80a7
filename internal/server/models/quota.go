package models

import "time"

// Quota is the storage ledger of one owner. 0 <= Used <= Limit holds for
// every committed record.
type Quota struct {
	OwnerID   string
	Limit     uint64
	Used      uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available returns the number of bytes that can still be reserved.
func (q *Quota) Available() uint64 {
	if q.Used >= q.Limit {
		return 0
	}
	return q.Limit - q.Used
}
