package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/filemeta/internal/proto"
	"github.com/dmitrijs2005/filemeta/internal/server/services"
)

func (s *GRPCServer) GenerateKey(ctx context.Context, req *pb.GenerateKeyRequest) (*pb.GenerateKeyResponse, error) {
	return &pb.GenerateKeyResponse{Key: s.uploads.GenerateKey()}, nil
}

func (s *GRPCServer) CreateUpload(ctx context.Context, req *pb.CreateUploadRequest) (*pb.CreateUploadResponse, error) {

	upload, err := s.uploads.StartUpload(ctx, services.StartUploadRequest{
		Bucket:   req.Bucket,
		Name:     req.Name,
		OwnerID:  req.OwnerID,
		ParentID: req.Parent,
		Size:     req.Size,
		IsUpdate: req.IsUpdate,
		FileID:   req.FileID,
	})
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &pb.CreateUploadResponse{Key: upload.Key, Bucket: upload.Bucket}, nil
}

func (s *GRPCServer) UpdateUploadID(ctx context.Context, req *pb.UpdateUploadIDRequest) (*pb.Empty, error) {
	if err := s.uploads.AttachUploadID(ctx, req.Key, req.Bucket, req.UploadID); err != nil {
		return nil, s.statusError(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) GetUploadByID(ctx context.Context, req *pb.GetUploadByIDRequest) (*pb.GetUploadByIDResponse, error) {

	upload, err := s.uploads.GetUpload(ctx, req.UploadID)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &pb.GetUploadByIDResponse{
		Key:      upload.Key,
		Bucket:   upload.Bucket,
		UploadID: upload.UploadID,
		Name:     upload.Name,
	}, nil
}

func (s *GRPCServer) DeleteUploadByID(ctx context.Context, req *pb.DeleteUploadByIDRequest) (*pb.Empty, error) {
	if err := s.uploads.CancelUpload(ctx, req.UploadID); err != nil {
		return nil, s.statusError(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) GetFileByID(ctx context.Context, req *pb.GetFileByIDRequest) (*pb.File, error) {
	f, err := s.files.GetByID(ctx, req.ID, req.IncludeDeleted)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return fileToPB(f), nil
}

func (s *GRPCServer) GetFileByKey(ctx context.Context, req *pb.GetFileByKeyRequest) (*pb.File, error) {
	f, err := s.files.GetByKey(ctx, req.Key)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return fileToPB(f), nil
}

func (s *GRPCServer) GetFilesByFolder(ctx context.Context, req *pb.GetFilesByFolderRequest) (*pb.GetFilesByFolderResponse, error) {

	list, err := s.files.GetFilesByFolder(ctx, req.FolderID, req.OwnerID, req.FoldersOnly)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	resp := &pb.GetFilesByFolderResponse{Files: make([]*pb.File, 0, len(list))}
	for _, f := range list {
		resp.Files = append(resp.Files, fileToPB(f))
	}
	return resp, nil
}

func (s *GRPCServer) CreateFile(ctx context.Context, req *pb.CreateFileRequest) (*pb.File, error) {

	f, err := s.files.CreateFile(ctx, services.CreateFileRequest{
		Key:         req.Key,
		Bucket:      req.Bucket,
		Name:        req.Name,
		Size:        req.Size,
		Type:        req.Type,
		OwnerID:     req.OwnerID,
		ParentID:    req.Parent,
		Description: req.Description,
		TargetID:    req.TargetID,
	})
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return fileToPB(f), nil
}

func (s *GRPCServer) DeleteFile(ctx context.Context, req *pb.DeleteFileRequest) (*pb.DeleteFileResponse, error) {
	ok, err := s.files.DeleteFile(ctx, req.ID)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return &pb.DeleteFileResponse{Ok: ok}, nil
}

func (s *GRPCServer) UpdateFile(ctx context.Context, req *pb.UpdateFileRequest) (*pb.File, error) {
	f, err := s.files.UpdateFile(ctx, updateFromPB(req))
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return fileToPB(f), nil
}

func (s *GRPCServer) UpdateFiles(ctx context.Context, req *pb.UpdateFilesRequest) (*pb.UpdateFilesResponse, error) {

	reqs := make([]services.UpdateFileRequest, 0, len(req.Updates))
	for _, u := range req.Updates {
		reqs = append(reqs, updateFromPB(u))
	}

	updated, failed := s.files.UpdateFiles(ctx, reqs)

	resp := &pb.UpdateFilesResponse{Updated: updated}
	for _, f := range failed {
		resp.Failed = append(resp.Failed, &pb.UpdateFailure{ID: f.ID, Reason: f.Reason, Message: f.Message})
	}
	return resp, nil
}

func (s *GRPCServer) IsAllowed(ctx context.Context, req *pb.IsAllowedRequest) (*pb.IsAllowedResponse, error) {
	ok, err := s.files.IsOwner(ctx, req.FileID, req.UserID)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return &pb.IsAllowedResponse{Allowed: ok}, nil
}

func (s *GRPCServer) GetOwnerQuota(ctx context.Context, req *pb.GetOwnerQuotaRequest) (*pb.GetOwnerQuotaResponse, error) {
	q, err := s.quotas.GetOrCreate(ctx, req.OwnerID)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return &pb.GetOwnerQuotaResponse{OwnerID: q.OwnerID, Limit: q.Limit, Used: q.Used}, nil
}

// quotaServer serves quota.QuotaService.
type quotaServer struct {
	pb.UnimplementedQuotaServiceServer
	s *GRPCServer
}

func (q *quotaServer) GetOwnerQuota(ctx context.Context, req *pb.GetOwnerQuotaRequest) (*pb.GetOwnerQuotaResponse, error) {
	return q.s.GetOwnerQuota(ctx, req)
}

func (q *quotaServer) IsAllowedToGetQuota(ctx context.Context, req *pb.IsAllowedToGetQuotaRequest) (*pb.IsAllowedToGetQuotaResponse, error) {
	return &pb.IsAllowedToGetQuotaResponse{Allowed: q.s.quotas.IsAllowedToGetQuota(req.RequestingUser, req.OwnerID)}, nil
}

func (q *quotaServer) UpdateQuota(ctx context.Context, req *pb.UpdateQuotaRequest) (*pb.UpdateQuotaResponse, error) {
	if _, err := q.s.quotas.AdjustUsed(ctx, req.OwnerID, req.Size); err != nil {
		return nil, q.s.statusError(ctx, err)
	}
	return &pb.UpdateQuotaResponse{Success: true}, nil
}
