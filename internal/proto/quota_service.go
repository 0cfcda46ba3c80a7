package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	QuotaService_GetOwnerQuota_FullMethodName       = "/quota.QuotaService/GetOwnerQuota"
	QuotaService_IsAllowedToGetQuota_FullMethodName = "/quota.QuotaService/IsAllowedToGetQuota"
	QuotaService_UpdateQuota_FullMethodName         = "/quota.QuotaService/UpdateQuota"
)

// QuotaServiceClient is the client API for the quota.QuotaService service.
type QuotaServiceClient interface {
	GetOwnerQuota(ctx context.Context, in *GetOwnerQuotaRequest, opts ...grpc.CallOption) (*GetOwnerQuotaResponse, error)
	IsAllowedToGetQuota(ctx context.Context, in *IsAllowedToGetQuotaRequest, opts ...grpc.CallOption) (*IsAllowedToGetQuotaResponse, error)
	UpdateQuota(ctx context.Context, in *UpdateQuotaRequest, opts ...grpc.CallOption) (*UpdateQuotaResponse, error)
}

type quotaServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewQuotaServiceClient(cc grpc.ClientConnInterface) QuotaServiceClient {
	return &quotaServiceClient{cc}
}

func (c *quotaServiceClient) GetOwnerQuota(ctx context.Context, in *GetOwnerQuotaRequest, opts ...grpc.CallOption) (*GetOwnerQuotaResponse, error) {
	return invoke[GetOwnerQuotaResponse](ctx, c.cc, QuotaService_GetOwnerQuota_FullMethodName, in, opts)
}

func (c *quotaServiceClient) IsAllowedToGetQuota(ctx context.Context, in *IsAllowedToGetQuotaRequest, opts ...grpc.CallOption) (*IsAllowedToGetQuotaResponse, error) {
	return invoke[IsAllowedToGetQuotaResponse](ctx, c.cc, QuotaService_IsAllowedToGetQuota_FullMethodName, in, opts)
}

func (c *quotaServiceClient) UpdateQuota(ctx context.Context, in *UpdateQuotaRequest, opts ...grpc.CallOption) (*UpdateQuotaResponse, error) {
	return invoke[UpdateQuotaResponse](ctx, c.cc, QuotaService_UpdateQuota_FullMethodName, in, opts)
}

// QuotaServiceServer is the server API for the quota.QuotaService service. Implementations
// must embed UnimplementedQuotaServiceServer.
type QuotaServiceServer interface {
	GetOwnerQuota(context.Context, *GetOwnerQuotaRequest) (*GetOwnerQuotaResponse, error)
	IsAllowedToGetQuota(context.Context, *IsAllowedToGetQuotaRequest) (*IsAllowedToGetQuotaResponse, error)
	UpdateQuota(context.Context, *UpdateQuotaRequest) (*UpdateQuotaResponse, error)
	mustEmbedUnimplementedQuotaServiceServer()
}

type UnimplementedQuotaServiceServer struct{}

func (UnimplementedQuotaServiceServer) GetOwnerQuota(context.Context, *GetOwnerQuotaRequest) (*GetOwnerQuotaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOwnerQuota not implemented")
}

func (UnimplementedQuotaServiceServer) IsAllowedToGetQuota(context.Context, *IsAllowedToGetQuotaRequest) (*IsAllowedToGetQuotaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IsAllowedToGetQuota not implemented")
}

func (UnimplementedQuotaServiceServer) UpdateQuota(context.Context, *UpdateQuotaRequest) (*UpdateQuotaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateQuota not implemented")
}

func (UnimplementedQuotaServiceServer) mustEmbedUnimplementedQuotaServiceServer() {}

func RegisterQuotaServiceServer(s grpc.ServiceRegistrar, srv QuotaServiceServer) {
	s.RegisterService(&QuotaService_ServiceDesc, srv)
}

var QuotaService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "quota.QuotaService",
	HandlerType: (*QuotaServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetOwnerQuota", Handler: unary[QuotaServiceServer](QuotaService_GetOwnerQuota_FullMethodName, QuotaServiceServer.GetOwnerQuota)},
		{MethodName: "IsAllowedToGetQuota", Handler: unary[QuotaServiceServer](QuotaService_IsAllowedToGetQuota_FullMethodName, QuotaServiceServer.IsAllowedToGetQuota)},
		{MethodName: "UpdateQuota", Handler: unary[QuotaServiceServer](QuotaService_UpdateQuota_FullMethodName, QuotaServiceServer.UpdateQuota)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "quota.proto",
}
