package grpc

import (
	"time"

	pb "github.com/dmitrijs2005/filemeta/internal/proto"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/dmitrijs2005/filemeta/internal/server/services"
)

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fileToPB(f *models.File) *pb.File {
	return &pb.File{
		ID:          f.ID,
		Key:         f.Key,
		Name:        f.Name,
		Type:        f.Type,
		Description: f.Description,
		OwnerID:     f.OwnerID,
		Size:        f.Size,
		Parent:      f.ParentID,
		Bucket:      f.Bucket,
		CreatedAt:   unixMilli(f.CreatedAt),
		UpdatedAt:   unixMilli(f.UpdatedAt),
		TargetID:    f.TargetID,
	}
}

func updateFromPB(req *pb.UpdateFileRequest) services.UpdateFileRequest {
	return services.UpdateFileRequest{
		ID:          req.ID,
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Size:        req.Size,
		ParentID:    req.Parent,
		Bucket:      req.Bucket,
		Key:         req.Key,
		Description: req.Description,
	}
}
