package files

import (
	"context"

	"github.com/dmitrijs2005/filemeta/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, f *models.File) error
	GetByID(ctx context.Context, id string, includeDeleted bool) (*models.File, error)
	GetByKey(ctx context.Context, key string) (*models.File, error)
	GetRoot(ctx context.Context, ownerID string) (*models.File, error)
	FindInFolder(ctx context.Context, ownerID, parentID, name string) (*models.File, error)
	ListByFolder(ctx context.Context, parentID string, foldersOnly bool) ([]*models.File, error)
	Update(ctx context.Context, f *models.File) error
	MarkDeleted(ctx context.Context, id string) error
	IsAncestor(ctx context.Context, ancestorID, nodeID string) (bool, error)
	LockOwner(ctx context.Context, ownerID string) error
}
