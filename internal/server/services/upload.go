package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/logging"
	"github.com/dmitrijs2005/filemeta/internal/server/events"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filemeta/internal/shared"
	"github.com/google/uuid"
)

// UploadService stages uploads and keeps their quota reservations in step
// with the ledger.
type UploadService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	quotas      *QuotaService
	roots       *rootFolders
	blobs       BlobAborter
	events      EventPublisher
	logger      logging.Logger
	newKey      func() string
	newID       func() string
}

func NewUploadService(tx dbx.Transactor, m repomanager.RepositoryManager, quotas *QuotaService,
	blobs BlobAborter, publisher EventPublisher, logger logging.Logger) *UploadService {
	return &UploadService{
		tx:          tx,
		repomanager: m,
		quotas:      quotas,
		roots:       newRootFolders(tx.Conn(), m),
		blobs:       blobs,
		events:      publisher,
		logger:      logger,
		newKey:      shared.GenerateKey,
		newID:       uuid.NewString,
	}
}

// GenerateKey returns a fresh storage key. It touches no state.
func (s *UploadService) GenerateKey() string {
	return s.newKey()
}

// growth is the extra space an update needs: max(0, newSize-oldSize).
func growth(newSize, oldSize uint64) uint64 {
	if newSize > oldSize {
		return newSize - oldSize
	}
	return 0
}

// StartUpload stages an upload and reserves its quota. New files reserve
// their full size; updates reserve only the growth over the current file.
// The upload record and the reservation commit together or not at all.
func (s *UploadService) StartUpload(ctx context.Context, req StartUploadRequest) (*models.Upload, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	if !req.IsUpdate && req.Name == "" {
		return nil, fmt.Errorf("%w: Name failed on 'required'", common.ErrValidation)
	}

	parentID := req.ParentID
	if parentID == "" && !(req.IsUpdate && req.FileID != "") {
		root, err := s.roots.resolve(ctx, req.OwnerID)
		if err != nil {
			return nil, err
		}
		parentID = root.ID
	}

	upload := &models.Upload{
		ID:       s.newID(),
		Key:      s.newKey(),
		Bucket:   req.Bucket,
		Name:     req.Name,
		OwnerID:  req.OwnerID,
		ParentID: parentID,
		IsUpdate: req.IsUpdate,
		FileID:   req.FileID,
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		filesRepo := s.repomanager.Files(tx)
		uploadsRepo := s.repomanager.Uploads(tx)

		reserve := req.Size

		if !req.IsUpdate {
			if req.ParentID != "" {
				if _, err := folderOf(ctx, filesRepo, parentID, req.OwnerID); err != nil {
					return err
				}
			}
			_, err := filesRepo.FindInFolder(ctx, req.OwnerID, parentID, req.Name)
			if err == nil {
				return common.ErrFileExistsWithSameName
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("error checking name: %w", err)
			}
		} else {
			target, err := s.updateTarget(ctx, filesRepo, req, parentID)
			if err != nil {
				return err
			}
			upload.FileID = target.ID
			upload.ParentID = target.ParentID
			if upload.Name == "" {
				upload.Name = target.Name
			}
			reserve = growth(req.Size, target.Size)
		}

		upload.Size = reserve
		if err := uploadsRepo.Create(ctx, upload); err != nil {
			return err
		}

		if _, err := s.quotas.AdjustUsedTx(ctx, tx, req.OwnerID, int64(reserve)); err != nil {
			// compensate the staged record
			if derr := uploadsRepo.Delete(ctx, upload.ID); derr != nil {
				s.logger.Error(ctx, "failed to remove upload after quota failure",
					"upload", upload.ID, "owner_id", req.OwnerID, "error", derr)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "upload started", "owner_id", upload.OwnerID, "key", upload.Key,
		"reserved", upload.Size, "update", upload.IsUpdate)
	s.publish(ctx, events.Event{
		Type:    events.UploadCreated,
		OwnerID: upload.OwnerID,
		FileID:  upload.FileID,
		Key:     upload.Key,
		Bucket:  upload.Bucket,
		Size:    upload.Size,
	})

	return upload, nil
}

type fileFinder interface {
	GetByID(ctx context.Context, id string, includeDeleted bool) (*models.File, error)
	FindInFolder(ctx context.Context, ownerID, parentID, name string) (*models.File, error)
}

func (s *UploadService) updateTarget(ctx context.Context, repo fileFinder, req StartUploadRequest, parentID string) (*models.File, error) {
	var (
		target *models.File
		err    error
	)
	if req.FileID != "" {
		target, err = repo.GetByID(ctx, req.FileID, false)
	} else {
		target, err = repo.FindInFolder(ctx, req.OwnerID, parentID, req.Name)
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if target.OwnerID != req.OwnerID {
		return nil, common.ErrFileNotFound
	}
	if target.Kind != models.KindRegular {
		return nil, fmt.Errorf("%w: only regular files have content", common.ErrValidation)
	}
	return target, nil
}

// AttachUploadID records the backend multipart id of the upload staged
// under (key, bucket).
func (s *UploadService) AttachUploadID(ctx context.Context, key, bucket, uploadID string) error {
	if key == "" || bucket == "" || uploadID == "" {
		return fmt.Errorf("%w: key, bucket and upload id are required", common.ErrValidation)
	}

	err := s.repomanager.Uploads(s.tx.Conn()).SetUploadID(ctx, key, bucket, uploadID)
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrUploadNotFound
	}
	return err
}

func (s *UploadService) GetUpload(ctx context.Context, uploadID string) (*models.Upload, error) {
	if uploadID == "" {
		return nil, fmt.Errorf("%w: upload id is required", common.ErrValidation)
	}

	u, err := s.repomanager.Uploads(s.tx.Conn()).GetByUploadID(ctx, uploadID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrUploadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}
	return u, nil
}

// CancelUpload drops the staged upload and releases its reservation. The
// delete decides which of concurrent cancellations wins, so the
// reservation is released at most once. When the release fails after the
// record is gone, the drift is logged and published for reconciliation.
func (s *UploadService) CancelUpload(ctx context.Context, uploadID string) error {
	if uploadID == "" {
		return fmt.Errorf("%w: upload id is required", common.ErrValidation)
	}

	u, err := s.repomanager.Uploads(s.tx.Conn()).DeleteByUploadID(ctx, uploadID)
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrUploadNotFound
	}
	if err != nil {
		return fmt.Errorf("error deleting upload: %w", err)
	}

	if u.Size > 0 {
		if _, err := s.quotas.AdjustUsed(ctx, u.OwnerID, -int64(u.Size)); err != nil {
			s.logger.Error(ctx, "quota release failed after upload deletion",
				"owner_id", u.OwnerID, "amount", u.Size, "upload_id", uploadID, "error", err)
			s.publish(ctx, events.Event{
				Type:     events.QuotaReconcile,
				OwnerID:  u.OwnerID,
				UploadID: uploadID,
				Amount:   -int64(u.Size),
				Reason:   err.Error(),
			})
			return fmt.Errorf("%w: %v", common.ErrQuotaReconciliation, err)
		}
	}

	if err := s.blobs.AbortMultipartUpload(ctx, u.Bucket, u.Key, uploadID); err != nil {
		s.logger.Warn(ctx, "failed to abort multipart upload", "upload_id", uploadID, "error", err)
	}

	s.logger.Info(ctx, "upload cancelled", "owner_id", u.OwnerID, "upload_id", uploadID, "released", u.Size)
	s.publish(ctx, events.Event{
		Type:     events.UploadCancelled,
		OwnerID:  u.OwnerID,
		UploadID: uploadID,
		Key:      u.Key,
		Bucket:   u.Bucket,
		Size:     u.Size,
	})
	return nil
}

func (s *UploadService) publish(ctx context.Context, e events.Event) {
	publish(ctx, s.events, s.logger, e)
}
