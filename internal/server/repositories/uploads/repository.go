package uploads

import (
	"context"

	"github.com/dmitrijs2005/filemeta/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, u *models.Upload) error
	GetByUploadID(ctx context.Context, uploadID string) (*models.Upload, error)
	GetByKey(ctx context.Context, key, bucket string) (*models.Upload, error)
	SetUploadID(ctx context.Context, key, bucket, uploadID string) error
	Delete(ctx context.Context, id string) error
	DeleteByUploadID(ctx context.Context, uploadID string) (*models.Upload, error)
	DeleteByKey(ctx context.Context, key, bucket string) (*models.Upload, error)
}
