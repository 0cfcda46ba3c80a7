package quotas

import (
	"context"

	"github.com/dmitrijs2005/filemeta/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, ownerID string) (*models.Quota, error)
	Insert(ctx context.Context, q *models.Quota) (bool, error)
	CompareAndSwapUsed(ctx context.Context, ownerID string, oldUsed, newUsed uint64) (bool, error)
}
