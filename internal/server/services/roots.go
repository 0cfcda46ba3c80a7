package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/files"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// rootFolders resolves the root folder of an owner, creating it on first
// use. Creation runs outside callers' transactions so that a root shared
// between concurrent requests is always committed.
type rootFolders struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	group       singleflight.Group
	newID       func() string
}

func newRootFolders(db dbx.DBTX, m repomanager.RepositoryManager) *rootFolders {
	return &rootFolders{db: db, repomanager: m, newID: uuid.NewString}
}

func (r *rootFolders) resolve(ctx context.Context, ownerID string) (*models.File, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", common.ErrValidation)
	}

	repo := r.repomanager.Files(r.db)

	root, err := repo.GetRoot(ctx, ownerID)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error reading root folder: %w", err)
	}

	v, err, _ := r.group.Do(ownerID, func() (any, error) {
		return r.create(ctx, repo, ownerID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.File), nil
}

func (r *rootFolders) create(ctx context.Context, repo files.Repository, ownerID string) (*models.File, error) {
	root := &models.File{
		ID:           r.newID(),
		Name:         ownerID,
		Type:         common.FolderType,
		Kind:         models.KindFolder,
		OwnerID:      ownerID,
		IsRootFolder: true,
	}

	err := repo.Create(ctx, root)
	if errors.Is(err, files.ErrRootFolderExists) {
		// another instance created it first
		return repo.GetRoot(ctx, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating root folder: %w", err)
	}
	return root, nil
}
