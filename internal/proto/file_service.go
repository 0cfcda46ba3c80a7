package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	FileService_GenerateKey_FullMethodName      = "/file.FileService/GenerateKey"
	FileService_CreateUpload_FullMethodName     = "/file.FileService/CreateUpload"
	FileService_UpdateUploadID_FullMethodName   = "/file.FileService/UpdateUploadID"
	FileService_GetUploadByID_FullMethodName    = "/file.FileService/GetUploadByID"
	FileService_DeleteUploadByID_FullMethodName = "/file.FileService/DeleteUploadByID"
	FileService_GetFileByID_FullMethodName      = "/file.FileService/GetFileByID"
	FileService_GetFileByKey_FullMethodName     = "/file.FileService/GetFileByKey"
	FileService_GetFilesByFolder_FullMethodName = "/file.FileService/GetFilesByFolder"
	FileService_CreateFile_FullMethodName       = "/file.FileService/CreateFile"
	FileService_DeleteFile_FullMethodName       = "/file.FileService/DeleteFile"
	FileService_UpdateFile_FullMethodName       = "/file.FileService/UpdateFile"
	FileService_UpdateFiles_FullMethodName      = "/file.FileService/UpdateFiles"
	FileService_IsAllowed_FullMethodName        = "/file.FileService/IsAllowed"
	FileService_GetOwnerQuota_FullMethodName    = "/file.FileService/GetOwnerQuota"
)

// FileServiceClient is the client API for the file.FileService service.
type FileServiceClient interface {
	GenerateKey(ctx context.Context, in *GenerateKeyRequest, opts ...grpc.CallOption) (*GenerateKeyResponse, error)
	CreateUpload(ctx context.Context, in *CreateUploadRequest, opts ...grpc.CallOption) (*CreateUploadResponse, error)
	UpdateUploadID(ctx context.Context, in *UpdateUploadIDRequest, opts ...grpc.CallOption) (*Empty, error)
	GetUploadByID(ctx context.Context, in *GetUploadByIDRequest, opts ...grpc.CallOption) (*GetUploadByIDResponse, error)
	DeleteUploadByID(ctx context.Context, in *DeleteUploadByIDRequest, opts ...grpc.CallOption) (*Empty, error)
	GetFileByID(ctx context.Context, in *GetFileByIDRequest, opts ...grpc.CallOption) (*File, error)
	GetFileByKey(ctx context.Context, in *GetFileByKeyRequest, opts ...grpc.CallOption) (*File, error)
	GetFilesByFolder(ctx context.Context, in *GetFilesByFolderRequest, opts ...grpc.CallOption) (*GetFilesByFolderResponse, error)
	CreateFile(ctx context.Context, in *CreateFileRequest, opts ...grpc.CallOption) (*File, error)
	DeleteFile(ctx context.Context, in *DeleteFileRequest, opts ...grpc.CallOption) (*DeleteFileResponse, error)
	UpdateFile(ctx context.Context, in *UpdateFileRequest, opts ...grpc.CallOption) (*File, error)
	UpdateFiles(ctx context.Context, in *UpdateFilesRequest, opts ...grpc.CallOption) (*UpdateFilesResponse, error)
	IsAllowed(ctx context.Context, in *IsAllowedRequest, opts ...grpc.CallOption) (*IsAllowedResponse, error)
	GetOwnerQuota(ctx context.Context, in *GetOwnerQuotaRequest, opts ...grpc.CallOption) (*GetOwnerQuotaResponse, error)
}

type fileServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFileServiceClient(cc grpc.ClientConnInterface) FileServiceClient {
	return &fileServiceClient{cc}
}

func (c *fileServiceClient) GenerateKey(ctx context.Context, in *GenerateKeyRequest, opts ...grpc.CallOption) (*GenerateKeyResponse, error) {
	return invoke[GenerateKeyResponse](ctx, c.cc, FileService_GenerateKey_FullMethodName, in, opts)
}

func (c *fileServiceClient) CreateUpload(ctx context.Context, in *CreateUploadRequest, opts ...grpc.CallOption) (*CreateUploadResponse, error) {
	return invoke[CreateUploadResponse](ctx, c.cc, FileService_CreateUpload_FullMethodName, in, opts)
}

func (c *fileServiceClient) UpdateUploadID(ctx context.Context, in *UpdateUploadIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, FileService_UpdateUploadID_FullMethodName, in, opts)
}

func (c *fileServiceClient) GetUploadByID(ctx context.Context, in *GetUploadByIDRequest, opts ...grpc.CallOption) (*GetUploadByIDResponse, error) {
	return invoke[GetUploadByIDResponse](ctx, c.cc, FileService_GetUploadByID_FullMethodName, in, opts)
}

func (c *fileServiceClient) DeleteUploadByID(ctx context.Context, in *DeleteUploadByIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, FileService_DeleteUploadByID_FullMethodName, in, opts)
}

func (c *fileServiceClient) GetFileByID(ctx context.Context, in *GetFileByIDRequest, opts ...grpc.CallOption) (*File, error) {
	return invoke[File](ctx, c.cc, FileService_GetFileByID_FullMethodName, in, opts)
}

func (c *fileServiceClient) GetFileByKey(ctx context.Context, in *GetFileByKeyRequest, opts ...grpc.CallOption) (*File, error) {
	return invoke[File](ctx, c.cc, FileService_GetFileByKey_FullMethodName, in, opts)
}

func (c *fileServiceClient) GetFilesByFolder(ctx context.Context, in *GetFilesByFolderRequest, opts ...grpc.CallOption) (*GetFilesByFolderResponse, error) {
	return invoke[GetFilesByFolderResponse](ctx, c.cc, FileService_GetFilesByFolder_FullMethodName, in, opts)
}

func (c *fileServiceClient) CreateFile(ctx context.Context, in *CreateFileRequest, opts ...grpc.CallOption) (*File, error) {
	return invoke[File](ctx, c.cc, FileService_CreateFile_FullMethodName, in, opts)
}

func (c *fileServiceClient) DeleteFile(ctx context.Context, in *DeleteFileRequest, opts ...grpc.CallOption) (*DeleteFileResponse, error) {
	return invoke[DeleteFileResponse](ctx, c.cc, FileService_DeleteFile_FullMethodName, in, opts)
}

func (c *fileServiceClient) UpdateFile(ctx context.Context, in *UpdateFileRequest, opts ...grpc.CallOption) (*File, error) {
	return invoke[File](ctx, c.cc, FileService_UpdateFile_FullMethodName, in, opts)
}

func (c *fileServiceClient) UpdateFiles(ctx context.Context, in *UpdateFilesRequest, opts ...grpc.CallOption) (*UpdateFilesResponse, error) {
	return invoke[UpdateFilesResponse](ctx, c.cc, FileService_UpdateFiles_FullMethodName, in, opts)
}

func (c *fileServiceClient) IsAllowed(ctx context.Context, in *IsAllowedRequest, opts ...grpc.CallOption) (*IsAllowedResponse, error) {
	return invoke[IsAllowedResponse](ctx, c.cc, FileService_IsAllowed_FullMethodName, in, opts)
}

func (c *fileServiceClient) GetOwnerQuota(ctx context.Context, in *GetOwnerQuotaRequest, opts ...grpc.CallOption) (*GetOwnerQuotaResponse, error) {
	return invoke[GetOwnerQuotaResponse](ctx, c.cc, FileService_GetOwnerQuota_FullMethodName, in, opts)
}

// FileServiceServer is the server API for the file.FileService service. Implementations
// must embed UnimplementedFileServiceServer.
type FileServiceServer interface {
	GenerateKey(context.Context, *GenerateKeyRequest) (*GenerateKeyResponse, error)
	CreateUpload(context.Context, *CreateUploadRequest) (*CreateUploadResponse, error)
	UpdateUploadID(context.Context, *UpdateUploadIDRequest) (*Empty, error)
	GetUploadByID(context.Context, *GetUploadByIDRequest) (*GetUploadByIDResponse, error)
	DeleteUploadByID(context.Context, *DeleteUploadByIDRequest) (*Empty, error)
	GetFileByID(context.Context, *GetFileByIDRequest) (*File, error)
	GetFileByKey(context.Context, *GetFileByKeyRequest) (*File, error)
	GetFilesByFolder(context.Context, *GetFilesByFolderRequest) (*GetFilesByFolderResponse, error)
	CreateFile(context.Context, *CreateFileRequest) (*File, error)
	DeleteFile(context.Context, *DeleteFileRequest) (*DeleteFileResponse, error)
	UpdateFile(context.Context, *UpdateFileRequest) (*File, error)
	UpdateFiles(context.Context, *UpdateFilesRequest) (*UpdateFilesResponse, error)
	IsAllowed(context.Context, *IsAllowedRequest) (*IsAllowedResponse, error)
	GetOwnerQuota(context.Context, *GetOwnerQuotaRequest) (*GetOwnerQuotaResponse, error)
	mustEmbedUnimplementedFileServiceServer()
}

type UnimplementedFileServiceServer struct{}

func (UnimplementedFileServiceServer) GenerateKey(context.Context, *GenerateKeyRequest) (*GenerateKeyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateKey not implemented")
}

func (UnimplementedFileServiceServer) CreateUpload(context.Context, *CreateUploadRequest) (*CreateUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateUpload not implemented")
}

func (UnimplementedFileServiceServer) UpdateUploadID(context.Context, *UpdateUploadIDRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateUploadID not implemented")
}

func (UnimplementedFileServiceServer) GetUploadByID(context.Context, *GetUploadByIDRequest) (*GetUploadByIDResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUploadByID not implemented")
}

func (UnimplementedFileServiceServer) DeleteUploadByID(context.Context, *DeleteUploadByIDRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteUploadByID not implemented")
}

func (UnimplementedFileServiceServer) GetFileByID(context.Context, *GetFileByIDRequest) (*File, error) {
	return nil, status.Error(codes.Unimplemented, "method GetFileByID not implemented")
}

func (UnimplementedFileServiceServer) GetFileByKey(context.Context, *GetFileByKeyRequest) (*File, error) {
	return nil, status.Error(codes.Unimplemented, "method GetFileByKey not implemented")
}

func (UnimplementedFileServiceServer) GetFilesByFolder(context.Context, *GetFilesByFolderRequest) (*GetFilesByFolderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetFilesByFolder not implemented")
}

func (UnimplementedFileServiceServer) CreateFile(context.Context, *CreateFileRequest) (*File, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateFile not implemented")
}

func (UnimplementedFileServiceServer) DeleteFile(context.Context, *DeleteFileRequest) (*DeleteFileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteFile not implemented")
}

func (UnimplementedFileServiceServer) UpdateFile(context.Context, *UpdateFileRequest) (*File, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateFile not implemented")
}

func (UnimplementedFileServiceServer) UpdateFiles(context.Context, *UpdateFilesRequest) (*UpdateFilesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateFiles not implemented")
}

func (UnimplementedFileServiceServer) IsAllowed(context.Context, *IsAllowedRequest) (*IsAllowedResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IsAllowed not implemented")
}

func (UnimplementedFileServiceServer) GetOwnerQuota(context.Context, *GetOwnerQuotaRequest) (*GetOwnerQuotaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOwnerQuota not implemented")
}

func (UnimplementedFileServiceServer) mustEmbedUnimplementedFileServiceServer() {}

func RegisterFileServiceServer(s grpc.ServiceRegistrar, srv FileServiceServer) {
	s.RegisterService(&FileService_ServiceDesc, srv)
}

var FileService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "file.FileService",
	HandlerType: (*FileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateKey", Handler: unary[FileServiceServer](FileService_GenerateKey_FullMethodName, FileServiceServer.GenerateKey)},
		{MethodName: "CreateUpload", Handler: unary[FileServiceServer](FileService_CreateUpload_FullMethodName, FileServiceServer.CreateUpload)},
		{MethodName: "UpdateUploadID", Handler: unary[FileServiceServer](FileService_UpdateUploadID_FullMethodName, FileServiceServer.UpdateUploadID)},
		{MethodName: "GetUploadByID", Handler: unary[FileServiceServer](FileService_GetUploadByID_FullMethodName, FileServiceServer.GetUploadByID)},
		{MethodName: "DeleteUploadByID", Handler: unary[FileServiceServer](FileService_DeleteUploadByID_FullMethodName, FileServiceServer.DeleteUploadByID)},
		{MethodName: "GetFileByID", Handler: unary[FileServiceServer](FileService_GetFileByID_FullMethodName, FileServiceServer.GetFileByID)},
		{MethodName: "GetFileByKey", Handler: unary[FileServiceServer](FileService_GetFileByKey_FullMethodName, FileServiceServer.GetFileByKey)},
		{MethodName: "GetFilesByFolder", Handler: unary[FileServiceServer](FileService_GetFilesByFolder_FullMethodName, FileServiceServer.GetFilesByFolder)},
		{MethodName: "CreateFile", Handler: unary[FileServiceServer](FileService_CreateFile_FullMethodName, FileServiceServer.CreateFile)},
		{MethodName: "DeleteFile", Handler: unary[FileServiceServer](FileService_DeleteFile_FullMethodName, FileServiceServer.DeleteFile)},
		{MethodName: "UpdateFile", Handler: unary[FileServiceServer](FileService_UpdateFile_FullMethodName, FileServiceServer.UpdateFile)},
		{MethodName: "UpdateFiles", Handler: unary[FileServiceServer](FileService_UpdateFiles_FullMethodName, FileServiceServer.UpdateFiles)},
		{MethodName: "IsAllowed", Handler: unary[FileServiceServer](FileService_IsAllowed_FullMethodName, FileServiceServer.IsAllowed)},
		{MethodName: "GetOwnerQuota", Handler: unary[FileServiceServer](FileService_GetOwnerQuota_FullMethodName, FileServiceServer.GetOwnerQuota)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "file.proto",
}
