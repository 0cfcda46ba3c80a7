package client

import (
	"context"

	pb "github.com/dmitrijs2005/filemeta/internal/proto"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	GenerateKey(ctx context.Context) (string, error)
	GetOwnerQuota(ctx context.Context, ownerID string) (*pb.GetOwnerQuotaResponse, error)
	ListFolder(ctx context.Context, ownerID, folderID string, foldersOnly bool) ([]*pb.File, error)
	Stat(ctx context.Context, id string, includeDeleted bool) (*pb.File, error)
	CancelUpload(ctx context.Context, uploadID string) error
}
