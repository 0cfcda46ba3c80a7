package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/server/events"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadReq(name string, size uint64) StartUploadRequest {
	return StartUploadRequest{Bucket: "b", Name: name, OwnerID: "u1", Size: size}
}

// seedFile puts a regular file of size into the owner's root folder.
func seedFile(t *testing.T, fx *fixture, name string, size uint64) *models.File {
	t.Helper()
	f, err := fx.files.CreateFile(context.Background(), CreateFileRequest{
		Key: "k-" + name, Bucket: "b", Name: name, Size: size, OwnerID: "u1",
	})
	require.NoError(t, err)
	return f
}

func TestGenerateKey(t *testing.T) {
	fx := newFixture(1000)
	k1, k2 := fx.uploads.GenerateKey(), fx.uploads.GenerateKey()
	assert.Len(t, k1, 32)
	assert.NotEqual(t, k1, k2)
	assert.Zero(t, fx.uploadCount())
}

// Scenario A.
func TestStartUpload_QuotaExceeded(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()

	u, err := fx.uploads.StartUpload(ctx, newUploadReq("a.bin", 600))
	require.NoError(t, err)
	assert.Equal(t, uint64(600), u.Size)
	assert.NotEmpty(t, u.Key)
	assert.Equal(t, uint64(600), fx.used("u1"))

	_, err = fx.uploads.StartUpload(ctx, newUploadReq("b.bin", 500))
	assert.ErrorIs(t, err, common.ErrQuotaExceeded)
	assert.Equal(t, uint64(600), fx.used("u1"))
	assert.Equal(t, 1, fx.uploadCount(), "failed reservation must not leave a staged upload")
}

func TestStartUpload_StagesUnderRoot(t *testing.T) {
	fx := newFixture(1000)

	u, err := fx.uploads.StartUpload(context.Background(), newUploadReq("a.bin", 10))
	require.NoError(t, err)

	root, err := memFiles{fx.store}.GetRoot(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, root.ID, u.ParentID)
	assert.Equal(t, []events.Type{events.UploadCreated}, fx.events.types())
}

func TestStartUpload_NameTaken(t *testing.T) {
	fx := newFixture(1000)
	seedFile(t, fx, "a.bin", 10)

	_, err := fx.uploads.StartUpload(context.Background(), newUploadReq("a.bin", 10))
	assert.ErrorIs(t, err, common.ErrFileExistsWithSameName)
	assert.Zero(t, fx.used("u1"))
}

func TestStartUpload_PendingNameTaken(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()

	_, err := fx.uploads.StartUpload(ctx, newUploadReq("a.bin", 10))
	require.NoError(t, err)
	_, err = fx.uploads.StartUpload(ctx, newUploadReq("a.bin", 10))
	assert.ErrorIs(t, err, common.ErrFileExistsWithSameName)
	assert.Equal(t, uint64(10), fx.used("u1"))
}

func TestStartUpload_Validation(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()

	_, err := fx.uploads.StartUpload(ctx, StartUploadRequest{Name: "a", OwnerID: "u1"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = fx.uploads.StartUpload(ctx, StartUploadRequest{Bucket: "b", OwnerID: "u1"})
	assert.ErrorIs(t, err, common.ErrValidation)

	req := newUploadReq("a", 1)
	req.ParentID = "not-a-uuid"
	_, err = fx.uploads.StartUpload(ctx, req)
	assert.ErrorIs(t, err, common.ErrIDInvalid)
}

// Scenario D: shrinking an existing file reserves nothing up front.
func TestStartUpload_UpdateShrinkReservesNothing(t *testing.T) {
	fx := newFixture(1000)
	f := seedFile(t, fx, "a.bin", 100)

	u, err := fx.uploads.StartUpload(context.Background(), StartUploadRequest{
		Bucket: "b", OwnerID: "u1", Size: 80, IsUpdate: true, FileID: f.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), u.Size)
	assert.Equal(t, f.ID, u.FileID)
	assert.Equal(t, "a.bin", u.Name)
	assert.Zero(t, fx.used("u1"))
}

func TestStartUpload_UpdateGrowthReservesDifference(t *testing.T) {
	fx := newFixture(1000)
	seedFile(t, fx, "a.bin", 100)

	req := newUploadReq("a.bin", 250)
	req.IsUpdate = true
	u, err := fx.uploads.StartUpload(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), u.Size)
	assert.Equal(t, uint64(150), fx.used("u1"))
}

func TestStartUpload_UpdateMissingTarget(t *testing.T) {
	fx := newFixture(1000)

	req := newUploadReq("nope.bin", 10)
	req.IsUpdate = true
	_, err := fx.uploads.StartUpload(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrFileNotFound)
	assert.Zero(t, fx.uploadCount())
}

func TestStartUpload_UpdateOtherOwnersFile(t *testing.T) {
	fx := newFixture(1000)
	f := seedFile(t, fx, "a.bin", 100)

	_, err := fx.uploads.StartUpload(context.Background(), StartUploadRequest{
		Bucket: "b", OwnerID: "u2", Size: 10, IsUpdate: true, FileID: f.ID,
	})
	assert.ErrorIs(t, err, common.ErrFileNotFound)
}

func TestAttachGetCancel_RoundTrip(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()

	u, err := fx.uploads.StartUpload(ctx, newUploadReq("a.bin", 600))
	require.NoError(t, err)
	require.NoError(t, fx.uploads.AttachUploadID(ctx, u.Key, u.Bucket, "mp-1"))

	got, err := fx.uploads.GetUpload(ctx, "mp-1")
	require.NoError(t, err)
	assert.Equal(t, u.Key, got.Key)
	assert.Equal(t, "a.bin", got.Name)

	require.NoError(t, fx.uploads.CancelUpload(ctx, "mp-1"))
	assert.Zero(t, fx.used("u1"))
	assert.Zero(t, fx.uploadCount())
	assert.Equal(t, []string{"mp-1"}, fx.blobs.aborted)
	assert.Equal(t, []events.Type{events.UploadCreated, events.UploadCancelled}, fx.events.types())

	_, err = fx.uploads.GetUpload(ctx, "mp-1")
	assert.ErrorIs(t, err, common.ErrUploadNotFound)
}

func TestAttachUploadID_Unknown(t *testing.T) {
	fx := newFixture(1000)
	err := fx.uploads.AttachUploadID(context.Background(), "k", "b", "mp-1")
	assert.ErrorIs(t, err, common.ErrUploadNotFound)

	err = fx.uploads.AttachUploadID(context.Background(), "", "b", "mp-1")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCancelUpload_ReleasesOnce(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()

	u, err := fx.uploads.StartUpload(ctx, newUploadReq("a.bin", 300))
	require.NoError(t, err)
	require.NoError(t, fx.uploads.AttachUploadID(ctx, u.Key, u.Bucket, "mp-1"))
	_, err = fx.quotas.AdjustUsed(ctx, "u1", 100)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fx.uploads.CancelUpload(ctx, "mp-1")
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, common.ErrUploadNotFound)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, uint64(100), fx.used("u1"))
}

func TestCancelUpload_ReleaseFailureIsReported(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()

	u, err := fx.uploads.StartUpload(ctx, newUploadReq("a.bin", 600))
	require.NoError(t, err)
	require.NoError(t, fx.uploads.AttachUploadID(ctx, u.Key, u.Bucket, "mp-1"))

	fx.store.failRelease = true
	err = fx.uploads.CancelUpload(ctx, "mp-1")
	require.ErrorIs(t, err, common.ErrQuotaReconciliation)
	assert.False(t, common.IsClientError(err))

	assert.Zero(t, fx.uploadCount(), "record deletion stays committed")
	assert.Equal(t, uint64(600), fx.used("u1"))

	entry, ok := fx.logger.find("error", "quota release failed after upload deletion")
	require.True(t, ok)
	assert.Contains(t, entry.args, "owner_id")
	assert.Contains(t, entry.args, "u1")
	assert.Contains(t, entry.args, "amount")
	assert.Contains(t, entry.args, uint64(600))

	types := fx.events.types()
	assert.Contains(t, types, events.QuotaReconcile)
	assert.NotContains(t, types, events.UploadCancelled)
}

func TestCancelUpload_AbortFailureIsIgnored(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()
	fx.blobs.err = errors.New("s3 down")

	u, err := fx.uploads.StartUpload(ctx, newUploadReq("a.bin", 10))
	require.NoError(t, err)
	require.NoError(t, fx.uploads.AttachUploadID(ctx, u.Key, u.Bucket, "mp-1"))

	require.NoError(t, fx.uploads.CancelUpload(ctx, "mp-1"))
	_, ok := fx.logger.find("warn", "failed to abort multipart upload")
	assert.True(t, ok)
}

func TestCancelUpload_Unknown(t *testing.T) {
	fx := newFixture(1000)
	assert.ErrorIs(t, fx.uploads.CancelUpload(context.Background(), "nope"), common.ErrUploadNotFound)
	assert.ErrorIs(t, fx.uploads.CancelUpload(context.Background(), ""), common.ErrValidation)
}

func TestStartUpload_PublishFailureDoesNotFail(t *testing.T) {
	fx := newFixture(1000)
	fx.events.err = errors.New("broker down")

	_, err := fx.uploads.StartUpload(context.Background(), newUploadReq("a.bin", 10))
	require.NoError(t, err)
	_, ok := fx.logger.find("warn", "failed to publish event")
	assert.True(t, ok)
}

// A failed reservation rolls the whole transaction back.
func TestStartUpload_RollsBackTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fx := newFixture(100)
	fx.uploads.tx = dbx.NewSQLTransactor(db, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = fx.uploads.StartUpload(context.Background(), newUploadReq("a.bin", 500))
	assert.ErrorIs(t, err, common.ErrQuotaExceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartUpload_CommitsTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fx := newFixture(1000)
	fx.uploads.tx = dbx.NewSQLTransactor(db, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err = fx.uploads.StartUpload(context.Background(), newUploadReq("a.bin", 500))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartUpload_ExplicitParentMustBeOwnFolder(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()
	file := seedFile(t, fx, "a.txt", 1)
	foreign, err := fx.files.CreateFile(ctx, CreateFileRequest{Name: "F", Type: common.FolderType, OwnerID: "u2"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		parent string
		want   error
	}{
		{name: "unknown", parent: "6f1c7a2e-8a0e-4f55-9a59-0c1e2f3a4b5c", want: common.ErrFileNotFound},
		{name: "other owner", parent: foreign.ID, want: common.ErrFileNotFound},
		{name: "not a folder", parent: file.ID, want: common.ErrParentNotFolder},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := newUploadReq("b.bin", 10)
			req.ParentID = tc.parent

			_, err := fx.uploads.StartUpload(ctx, req)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, fx.uploadCount())
			assert.Zero(t, fx.used("u1"))
		})
	}
}

// Concurrent uploads each asking for slightly more than an equal share:
// the ledger stays within the limit and every charge has exactly one
// staged upload behind it.
func TestStartUpload_ConcurrentNeverExceedsLimit(t *testing.T) {
	const (
		n     = 10
		limit = 1000
		size  = limit/n + 1
	)
	fx := newFixture(limit)
	ctx := context.Background()
	// create the root folder up front
	_, err := fx.files.GetFilesByFolder(ctx, "", "u1", false)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := fx.uploads.StartUpload(ctx, newUploadReq(fmt.Sprintf("part-%d.bin", i), size))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			assert.ErrorIs(t, err, common.ErrQuotaExceeded)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n-1, successes)
	assert.LessOrEqual(t, fx.used("u1"), uint64(limit))
	assert.Equal(t, uint64(successes*size), fx.used("u1"))
	assert.Equal(t, successes, fx.uploadCount())
}
