// Package uploads stores staged upload records.
package uploads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
)

const (
	constraintKeyBucket = "uploads_key_bucket_uq"
	constraintNewName   = "uploads_new_name_uq"
	constraintUploadID  = "uploads_upload_id_key"
)

const uploadColumns = `id, upload_id, key, bucket, name, owner_id, parent_id, size, is_update, file_id, created_at, updated_at`

// PostgresRepository implements upload staging over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func translate(err error) error {
	if name, ok := dbx.UniqueViolation(err); ok {
		switch name {
		case constraintKeyBucket, constraintUploadID:
			return common.ErrKeyAlreadyExists
		case constraintNewName:
			return common.ErrFileExistsWithSameName
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func scanUpload(row *sql.Row) (*models.Upload, error) {
	var (
		u      sql.NullString
		fileID sql.NullString
		size   int64
		up     models.Upload
	)
	err := row.Scan(&up.ID, &u, &up.Key, &up.Bucket, &up.Name, &up.OwnerID, &up.ParentID, &size,
		&up.IsUpdate, &fileID, &up.CreatedAt, &up.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	up.UploadID = u.String
	up.FileID = fileID.String
	up.Size = uint64(size)
	return &up, nil
}

// Create inserts u and fills its timestamps.
func (r *PostgresRepository) Create(ctx context.Context, u *models.Upload) error {
	query := `
		INSERT INTO uploads (id, upload_id, key, bucket, name, owner_id, parent_id, size, is_update, file_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		u.ID, dbx.NullIfEmpty(u.UploadID), u.Key, u.Bucket, u.Name, u.OwnerID, u.ParentID, int64(u.Size),
		u.IsUpdate, dbx.NullIfEmpty(u.FileID),
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *PostgresRepository) GetByUploadID(ctx context.Context, uploadID string) (*models.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE upload_id=$1`
	return scanUpload(r.db.QueryRowContext(ctx, query, uploadID))
}

func (r *PostgresRepository) GetByKey(ctx context.Context, key, bucket string) (*models.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE key=$1 AND bucket=$2`
	return scanUpload(r.db.QueryRowContext(ctx, query, key, bucket))
}

// SetUploadID attaches the external upload id to the record (key, bucket).
func (r *PostgresRepository) SetUploadID(ctx context.Context, key, bucket, uploadID string) error {
	query := `UPDATE uploads SET upload_id=$3, updated_at=now() WHERE key=$1 AND bucket=$2`
	res, err := r.db.ExecContext(ctx, query, key, bucket, uploadID)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteByUploadID removes the record and returns it. Of two concurrent
// callers only one gets the row.
func (r *PostgresRepository) DeleteByUploadID(ctx context.Context, uploadID string) (*models.Upload, error) {
	query := `DELETE FROM uploads WHERE upload_id=$1 RETURNING ` + uploadColumns
	return scanUpload(r.db.QueryRowContext(ctx, query, uploadID))
}

// DeleteByKey removes the record (key, bucket) and returns it.
func (r *PostgresRepository) DeleteByKey(ctx context.Context, key, bucket string) (*models.Upload, error) {
	query := `DELETE FROM uploads WHERE key=$1 AND bucket=$2 RETURNING ` + uploadColumns
	return scanUpload(r.db.QueryRowContext(ctx, query, key, bucket))
}
