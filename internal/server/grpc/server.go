// Package grpc exposes the file and quota services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/filemeta/internal/logging"
	pb "github.com/dmitrijs2005/filemeta/internal/proto"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/dmitrijs2005/filemeta/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type FileLifecycle interface {
	CreateFile(ctx context.Context, req services.CreateFileRequest) (*models.File, error)
	UpdateFile(ctx context.Context, req services.UpdateFileRequest) (*models.File, error)
	UpdateFiles(ctx context.Context, reqs []services.UpdateFileRequest) ([]string, []services.UpdateFailure)
	DeleteFile(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string, includeDeleted bool) (*models.File, error)
	GetByKey(ctx context.Context, key string) (*models.File, error)
	GetFilesByFolder(ctx context.Context, folderID, ownerID string, foldersOnly bool) ([]*models.File, error)
	IsOwner(ctx context.Context, fileID, userID string) (bool, error)
}

type UploadCoordinator interface {
	GenerateKey() string
	StartUpload(ctx context.Context, req services.StartUploadRequest) (*models.Upload, error)
	AttachUploadID(ctx context.Context, key, bucket, uploadID string) error
	GetUpload(ctx context.Context, uploadID string) (*models.Upload, error)
	CancelUpload(ctx context.Context, uploadID string) error
}

type QuotaLedger interface {
	GetOrCreate(ctx context.Context, ownerID string) (*models.Quota, error)
	AdjustUsed(ctx context.Context, ownerID string, delta int64) (*models.Quota, error)
	IsAllowedToGetQuota(requestingUser, ownerID string) bool
}

// GRPCServer serves file.FileService. quota.QuotaService is served by a
// thin wrapper sharing the same dependencies.
type GRPCServer struct {
	pb.UnimplementedFileServiceServer
	address   string
	files     FileLifecycle
	uploads   UploadCoordinator
	quotas    QuotaLedger
	logger    logging.Logger
	jwtSecret []byte
	health    *health.Server
}

func NewGRPCServer(a string, l logging.Logger, fs FileLifecycle, us UploadCoordinator, qs QuotaLedger, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		files:     fs,
		uploads:   us,
		quotas:    qs,
		jwtSecret: []byte(secretKey),
		health:    health.NewServer(),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor, s.loggingInterceptor))

	pb.RegisterFileServiceServer(srv, s)
	pb.RegisterQuotaServiceServer(srv, &quotaServer{s: s})
	healthpb.RegisterHealthServer(srv, s.health)

	for _, name := range []string{"", pb.FileService_ServiceDesc.ServiceName, pb.QuotaService_ServiceDesc.ServiceName} {
		s.health.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
