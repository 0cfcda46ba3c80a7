// Package quotas stores per-owner quota ledgers.
package quotas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
)

// PostgresRepository implements quota storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the quota of ownerID or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, ownerID string) (*models.Quota, error) {
	query := `SELECT owner_id, quota_limit, used, created_at, updated_at FROM quotas WHERE owner_id=$1`

	var (
		q           models.Quota
		limit, used int64
	)
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&q.OwnerID, &limit, &used, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	q.Limit = uint64(limit)
	q.Used = uint64(used)
	return &q, nil
}

// Insert creates the quota record unless one already exists for the owner.
// It reports whether a row was inserted.
func (r *PostgresRepository) Insert(ctx context.Context, q *models.Quota) (bool, error) {
	query := `
		INSERT INTO quotas (owner_id, quota_limit, used)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, q.OwnerID, int64(q.Limit), int64(q.Used))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

// CompareAndSwapUsed sets used to newUsed only if it still equals oldUsed.
// It reports whether the swap happened.
func (r *PostgresRepository) CompareAndSwapUsed(ctx context.Context, ownerID string, oldUsed, newUsed uint64) (bool, error) {
	query := `UPDATE quotas SET used=$3, updated_at=now() WHERE owner_id=$1 AND used=$2`

	res, err := r.db.ExecContext(ctx, query, ownerID, int64(oldUsed), int64(newUsed))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}
