// Package files stores the file tree: regular files, folders and shortcuts
// in a single table. Deleted nodes are kept with deleted=true.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
)

// ErrRootFolderExists is returned by Create when the owner already has a
// live root folder.
var ErrRootFolderExists = errors.New("root folder already exists")

const (
	constraintNameInFolder = "files_name_in_folder_uq"
	constraintRootFolder   = "files_root_folder_uq"
	constraintKey          = "files_key_uq"
)

const fileColumns = `id, key, bucket, name, kind, type, description, owner_id, size,
	parent_id, target_id, is_root_folder, deleted, created_at, updated_at`

// PostgresRepository implements file tree storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (*models.File, error) {
	var (
		f                                     models.File
		key, bucket, parentID, targetID, kind sql.NullString
		size                                  int64
	)
	err := s.Scan(&f.ID, &key, &bucket, &f.Name, &kind, &f.Type, &f.Description, &f.OwnerID, &size,
		&parentID, &targetID, &f.IsRootFolder, &f.Deleted, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Key = key.String
	f.Bucket = bucket.String
	f.Kind = models.Kind(kind.String)
	f.Size = uint64(size)
	f.ParentID = parentID.String
	f.TargetID = targetID.String
	return &f, nil
}

// translate maps constraint violations to domain errors. Every write goes
// through it.
func translate(err error) error {
	if name, ok := dbx.UniqueViolation(err); ok {
		switch name {
		case constraintNameInFolder:
			return common.ErrFileExistsWithSameName
		case constraintKey:
			return common.ErrKeyAlreadyExists
		case constraintRootFolder:
			return ErrRootFolderExists
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*models.File, error) {
	f, err := scanFile(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// Create inserts f and fills its timestamps.
func (r *PostgresRepository) Create(ctx context.Context, f *models.File) error {
	query := `
		INSERT INTO files (id, key, bucket, name, kind, type, description, owner_id, size,
			parent_id, target_id, is_root_folder)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		f.ID, dbx.NullIfEmpty(f.Key), dbx.NullIfEmpty(f.Bucket), f.Name, string(f.Kind), f.Type, f.Description,
		f.OwnerID, int64(f.Size), dbx.NullIfEmpty(f.ParentID), dbx.NullIfEmpty(f.TargetID), f.IsRootFolder,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

// GetByID returns the node with id. Deleted nodes are only returned when
// includeDeleted is set.
func (r *PostgresRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id=$1 AND ($2 OR NOT deleted)`
	return r.queryOne(ctx, query, id, includeDeleted)
}

func (r *PostgresRepository) GetByKey(ctx context.Context, key string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE key=$1 AND NOT deleted`
	return r.queryOne(ctx, query, key)
}

func (r *PostgresRepository) GetRoot(ctx context.Context, ownerID string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE owner_id=$1 AND is_root_folder AND NOT deleted`
	return r.queryOne(ctx, query, ownerID)
}

// FindInFolder returns the live sibling called name, or common.ErrorNotFound.
func (r *PostgresRepository) FindInFolder(ctx context.Context, ownerID, parentID, name string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files
		WHERE owner_id=$1 AND parent_id=$2 AND name=$3 AND NOT deleted`
	return r.queryOne(ctx, query, ownerID, parentID, name)
}

// ListByFolder returns the live children of parentID, folders first, then
// by name.
func (r *PostgresRepository) ListByFolder(ctx context.Context, parentID string, foldersOnly bool) ([]*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files
		WHERE parent_id=$1 AND NOT deleted AND (NOT $2 OR kind='folder')
		ORDER BY kind <> 'folder', name`

	rows, err := r.db.QueryContext(ctx, query, parentID, foldersOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes the mutable fields of f. Deleted nodes cannot be updated.
func (r *PostgresRepository) Update(ctx context.Context, f *models.File) error {
	query := `
		UPDATE files SET key=$2, bucket=$3, name=$4, description=$5, size=$6, parent_id=$7, updated_at=now()
		WHERE id=$1 AND NOT deleted
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		f.ID, dbx.NullIfEmpty(f.Key), dbx.NullIfEmpty(f.Bucket), f.Name, f.Description, int64(f.Size), dbx.NullIfEmpty(f.ParentID),
	).Scan(&f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return translate(err)
	}
	return nil
}

// MarkDeleted soft-deletes a single node. Children are not touched.
func (r *PostgresRepository) MarkDeleted(ctx context.Context, id string) error {
	query := `UPDATE files SET deleted=TRUE, updated_at=now() WHERE id=$1 AND NOT deleted`
	res, err := r.db.ExecContext(ctx, query, id)
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

// IsAncestor reports whether ancestorID is nodeID itself or one of the
// folders above it.
func (r *PostgresRepository) IsAncestor(ctx context.Context, ancestorID, nodeID string) (bool, error) {
	query := `
		WITH RECURSIVE chain AS (
			SELECT id, parent_id FROM files WHERE id=$1
			UNION
			SELECT f.id, f.parent_id FROM files f JOIN chain c ON f.id = c.parent_id
		)
		SELECT EXISTS (SELECT 1 FROM chain WHERE id=$2)
	`
	var found bool
	if err := r.db.QueryRowContext(ctx, query, nodeID, ancestorID).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

// LockOwner serializes tree writes of ownerID until the surrounding
// transaction ends. Outside a transaction the lock is released at once.
func (r *PostgresRepository) LockOwner(ctx context.Context, ownerID string) error {
	if _, err := r.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, ownerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
