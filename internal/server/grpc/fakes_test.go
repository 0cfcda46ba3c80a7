package grpc

import (
	"context"

	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/dmitrijs2005/filemeta/internal/server/services"
)

type fakeFiles struct {
	file    *models.File
	list    []*models.File
	err     error
	ok      bool
	updated []string
	failed  []services.UpdateFailure

	gotCreate  services.CreateFileRequest
	gotUpdate  services.UpdateFileRequest
	gotUpdates []services.UpdateFileRequest
	gotFolder  [3]any
}

func (f *fakeFiles) CreateFile(ctx context.Context, req services.CreateFileRequest) (*models.File, error) {
	f.gotCreate = req
	return f.file, f.err
}

func (f *fakeFiles) UpdateFile(ctx context.Context, req services.UpdateFileRequest) (*models.File, error) {
	f.gotUpdate = req
	return f.file, f.err
}

func (f *fakeFiles) UpdateFiles(ctx context.Context, reqs []services.UpdateFileRequest) ([]string, []services.UpdateFailure) {
	f.gotUpdates = reqs
	return f.updated, f.failed
}

func (f *fakeFiles) DeleteFile(ctx context.Context, id string) (bool, error) {
	return f.ok, f.err
}

func (f *fakeFiles) GetByID(ctx context.Context, id string, includeDeleted bool) (*models.File, error) {
	return f.file, f.err
}

func (f *fakeFiles) GetByKey(ctx context.Context, key string) (*models.File, error) {
	return f.file, f.err
}

func (f *fakeFiles) GetFilesByFolder(ctx context.Context, folderID, ownerID string, foldersOnly bool) ([]*models.File, error) {
	f.gotFolder = [3]any{folderID, ownerID, foldersOnly}
	return f.list, f.err
}

func (f *fakeFiles) IsOwner(ctx context.Context, fileID, userID string) (bool, error) {
	return f.ok, f.err
}

type fakeUploads struct {
	key    string
	upload *models.Upload
	err    error

	gotStart     services.StartUploadRequest
	gotAttach    [3]string
	gotCancelled string
}

func (f *fakeUploads) GenerateKey() string { return f.key }

func (f *fakeUploads) StartUpload(ctx context.Context, req services.StartUploadRequest) (*models.Upload, error) {
	f.gotStart = req
	return f.upload, f.err
}

func (f *fakeUploads) AttachUploadID(ctx context.Context, key, bucket, uploadID string) error {
	f.gotAttach = [3]string{key, bucket, uploadID}
	return f.err
}

func (f *fakeUploads) GetUpload(ctx context.Context, uploadID string) (*models.Upload, error) {
	return f.upload, f.err
}

func (f *fakeUploads) CancelUpload(ctx context.Context, uploadID string) error {
	f.gotCancelled = uploadID
	return f.err
}

type fakeQuotas struct {
	quota    *models.Quota
	err      error
	gotDelta int64
}

func (f *fakeQuotas) GetOrCreate(ctx context.Context, ownerID string) (*models.Quota, error) {
	return f.quota, f.err
}

func (f *fakeQuotas) AdjustUsed(ctx context.Context, ownerID string, delta int64) (*models.Quota, error) {
	f.gotDelta = delta
	return f.quota, f.err
}

func (f *fakeQuotas) IsAllowedToGetQuota(requestingUser, ownerID string) bool {
	return requestingUser == ownerID
}
