package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filemeta/internal/common"
	pb "github.com/dmitrijs2005/filemeta/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type tokenSource interface {
	Token() (string, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	files       pb.FileServiceClient
	quotas      pb.QuotaServiceClient
	health      healthpb.HealthClient
	tokens      tokenSource
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.tokens != nil {
		token, err := s.tokens.Token()
		if err != nil {
			return fmt.Errorf("mint token: %w", err)
		}
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects to endpointURL. tokens may be nil when the server
// runs without a secret.
func NewGRPCClient(endpointURL string, tokens *TokenSource, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if tokens != nil {
		c.tokens = tokens
	}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.files = pb.NewFileServiceClient(conn)
	s.quotas = pb.NewQuotaServiceClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) GenerateKey(ctx context.Context) (string, error) {
	resp, err := s.files.GenerateKey(ctx, &pb.GenerateKeyRequest{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Key, nil
}

func (s *GRPCClient) GetOwnerQuota(ctx context.Context, ownerID string) (*pb.GetOwnerQuotaResponse, error) {
	resp, err := s.quotas.GetOwnerQuota(ctx, &pb.GetOwnerQuotaRequest{OwnerID: ownerID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// ListFolder lists folderID, or the owner's root when folderID is empty.
func (s *GRPCClient) ListFolder(ctx context.Context, ownerID, folderID string, foldersOnly bool) ([]*pb.File, error) {
	req := &pb.GetFilesByFolderRequest{FolderID: folderID, OwnerID: ownerID, FoldersOnly: foldersOnly}
	resp, err := s.files.GetFilesByFolder(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Files, nil
}

func (s *GRPCClient) Stat(ctx context.Context, id string, includeDeleted bool) (*pb.File, error) {
	f, err := s.files.GetFileByID(ctx, &pb.GetFileByIDRequest{ID: id, IncludeDeleted: includeDeleted})
	if err != nil {
		return nil, s.mapError(err)
	}
	return f, nil
}

func (s *GRPCClient) CancelUpload(ctx context.Context, uploadID string) error {
	if _, err := s.files.DeleteUploadByID(ctx, &pb.DeleteUploadByIDRequest{UploadID: uploadID}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	}
	if sentinel := common.ErrorOf(ReasonOf(err)); sentinel != nil {
		if st.Message() == sentinel.Error() {
			return sentinel
		}
		return fmt.Errorf("%w: %s", sentinel, st.Message())
	}
	return fmt.Errorf("rpc error: %w", err)
}
