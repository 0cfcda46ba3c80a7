package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/logging"
	"github.com/dmitrijs2005/filemeta/internal/server/events"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/files"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// FileService manages the lifecycle of file tree nodes.
type FileService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	quotas      *QuotaService
	roots       *rootFolders
	cache       FileCache
	events      EventPublisher
	logger      logging.Logger
	newID       func() string
}

func NewFileService(tx dbx.Transactor, m repomanager.RepositoryManager, quotas *QuotaService,
	cache FileCache, publisher EventPublisher, logger logging.Logger) *FileService {
	return &FileService{
		tx:          tx,
		repomanager: m,
		quotas:      quotas,
		roots:       newRootFolders(tx.Conn(), m),
		cache:       cache,
		events:      publisher,
		logger:      logger,
		newID:       uuid.NewString,
	}
}

// UpdateFailure describes one rejected entry of UpdateFiles.
type UpdateFailure struct {
	ID      string
	Reason  string
	Message string
}

// folderOf loads parentID and checks that it is a live folder of ownerID.
func folderOf(ctx context.Context, repo files.Repository, parentID, ownerID string) (*models.File, error) {
	parent, err := repo.GetByID(ctx, parentID, false)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading parent: %w", err)
	}
	if parent.OwnerID != ownerID {
		return nil, common.ErrFileNotFound
	}
	if !parent.IsFolder() {
		return nil, common.ErrParentNotFolder
	}
	return parent, nil
}

// ensureNameFree fails with ErrFileExistsWithSameName when another live
// node named name exists in parentID.
func ensureNameFree(ctx context.Context, repo files.Repository, ownerID, parentID, name, selfID string) error {
	other, err := repo.FindInFolder(ctx, ownerID, parentID, name)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking name: %w", err)
	}
	if other.ID == selfID {
		return nil
	}
	return common.ErrFileExistsWithSameName
}

// lockedNode reads id, takes the tree lock of its owner and reads it again
// so that the returned node cannot change before the transaction ends.
func lockedNode(ctx context.Context, repo files.Repository, id string) (*models.File, error) {
	f, err := repo.GetByID(ctx, id, false)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if err := repo.LockOwner(ctx, f.OwnerID); err != nil {
		return nil, fmt.Errorf("error locking tree: %w", err)
	}

	f, err = repo.GetByID(ctx, id, false)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return f, nil
}

// CreateFile creates a node. Regular files need a storage key; when the key
// matches a pending upload, that upload is consumed in the same
// transaction. Its reservation already accounts for the content, so the
// upload must belong to the same owner and match the file's size and name.
func (s *FileService) CreateFile(ctx context.Context, req CreateFileRequest) (*models.File, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	kind := models.KindForType(req.Type)
	switch kind {
	case models.KindRegular:
		if req.Key == "" {
			return nil, common.ErrNoKeySent
		}
	case models.KindShortcut:
		if req.TargetID == "" {
			return nil, fmt.Errorf("%w: TargetID failed on 'required'", common.ErrValidation)
		}
	}

	f := &models.File{
		ID:          s.newID(),
		Name:        req.Name,
		Type:        req.Type,
		Kind:        kind,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		ParentID:    req.ParentID,
	}
	if kind == models.KindRegular {
		f.Key = req.Key
		f.Bucket = req.Bucket
		f.Size = req.Size
	}
	if kind == models.KindShortcut {
		f.TargetID = req.TargetID
	}

	if f.ParentID == "" {
		root, err := s.roots.resolve(ctx, req.OwnerID)
		if err != nil {
			return nil, err
		}
		f.ParentID = root.ID
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Files(tx)

		if err := repo.LockOwner(ctx, f.OwnerID); err != nil {
			return fmt.Errorf("error locking tree: %w", err)
		}

		if kind == models.KindRegular {
			if err := s.consumeUpload(ctx, tx, req.ParentID, f); err != nil {
				return err
			}
		}

		if _, err := folderOf(ctx, repo, f.ParentID, f.OwnerID); err != nil {
			return err
		}
		if err := ensureNameFree(ctx, repo, f.OwnerID, f.ParentID, f.Name, ""); err != nil {
			return err
		}

		if kind == models.KindShortcut {
			target, err := repo.GetByID(ctx, f.TargetID, false)
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrFileNotFound
			}
			if err != nil {
				return fmt.Errorf("error reading shortcut target: %w", err)
			}
			if target.OwnerID != f.OwnerID {
				return common.ErrFileNotFound
			}
		}

		return repo.Create(ctx, f)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "file created", "id", f.ID, "owner_id", f.OwnerID, "kind", f.Kind)
	publish(ctx, s.events, s.logger, events.Event{
		Type:    events.FileCreated,
		OwnerID: f.OwnerID,
		FileID:  f.ID,
		Key:     f.Key,
		Bucket:  f.Bucket,
		Size:    f.Size,
	})
	return f, nil
}

// consumeUpload removes the pending upload staged under f's key, if any.
// A file created without a parent goes where the upload was staged.
func (s *FileService) consumeUpload(ctx context.Context, tx dbx.DBTX, parentID string, f *models.File) error {
	repo := s.repomanager.Uploads(tx)

	up, err := repo.GetByKey(ctx, f.Key, f.Bucket)
	if errors.Is(err, common.ErrorNotFound) {
		// metadata only
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading upload: %w", err)
	}

	switch {
	case up.IsUpdate:
		return fmt.Errorf("%w: key belongs to a pending update", common.ErrKeyAlreadyExists)
	case up.OwnerID != f.OwnerID:
		return fmt.Errorf("%w: key belongs to another upload", common.ErrKeyAlreadyExists)
	case up.Size != f.Size:
		return fmt.Errorf("%w: size %d does not match the %d reserved by the upload", common.ErrValidation, f.Size, up.Size)
	case up.Name != f.Name:
		return fmt.Errorf("%w: name does not match the upload", common.ErrValidation)
	case parentID != "" && parentID != up.ParentID:
		return fmt.Errorf("%w: parent does not match the upload", common.ErrValidation)
	}
	f.ParentID = up.ParentID

	if _, err := repo.DeleteByKey(ctx, f.Key, f.Bucket); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: upload was already finalized", common.ErrKeyAlreadyExists)
		}
		return fmt.Errorf("error consuming upload: %w", err)
	}
	return nil
}

// UpdateFile applies a partial update to one node. Renames and moves keep
// sibling names unique, and a folder can never be moved under itself.
func (s *FileService) UpdateFile(ctx context.Context, req UpdateFileRequest) (*models.File, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	if req.ParentID != nil && *req.ParentID != "" {
		if err := checkID(*req.ParentID); err != nil {
			return nil, err
		}
	}

	changes := req.changes()
	var f *models.File

	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Files(tx)

		current, err := lockedNode(ctx, repo, req.ID)
		if err != nil {
			return err
		}
		if req.OwnerID != "" && current.OwnerID != req.OwnerID {
			return common.ErrFileNotFound
		}

		if changes.ParentID != nil && *changes.ParentID == "" {
			root, err := s.roots.resolve(ctx, current.OwnerID)
			if err != nil {
				return err
			}
			changes.ParentID = &root.ID
		}

		if err := checkChanges(current, &changes); err != nil {
			return err
		}
		if changes.Empty() {
			f = current
			return nil
		}

		old := *current
		f = current
		changes.Apply(f)

		moved := f.ParentID != old.ParentID
		if moved {
			if _, err := folderOf(ctx, repo, f.ParentID, f.OwnerID); err != nil {
				return err
			}
			if f.ParentID == f.ID {
				return common.ErrInvalidMove
			}
			if f.IsFolder() {
				inside, err := repo.IsAncestor(ctx, f.ID, f.ParentID)
				if err != nil {
					return fmt.Errorf("error checking move: %w", err)
				}
				if inside {
					return common.ErrInvalidMove
				}
			}
		}
		if moved || f.Name != old.Name {
			if err := ensureNameFree(ctx, repo, f.OwnerID, f.ParentID, f.Name, f.ID); err != nil {
				return err
			}
		}

		if f.Key != old.Key {
			if err := s.finalizeUpdate(ctx, tx, &old, f, changes.Size != nil); err != nil {
				return err
			}
		}

		return repo.Update(ctx, f)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, f.ID)
	s.logger.Info(ctx, "file updated", "id", f.ID, "owner_id", f.OwnerID)
	publish(ctx, s.events, s.logger, events.Event{
		Type:    events.FileUpdated,
		OwnerID: f.OwnerID,
		FileID:  f.ID,
		Key:     f.Key,
		Bucket:  f.Bucket,
		Size:    f.Size,
	})
	return f, nil
}

// checkChanges rejects changes that do not apply to the node.
func checkChanges(f *models.File, u *models.FileUpdate) error {
	if f.IsRootFolder && (u.Name != nil || u.ParentID != nil) {
		return fmt.Errorf("%w: root folder cannot be renamed or moved", common.ErrInvalidMove)
	}
	if f.Kind != models.KindRegular && (u.Key != nil || u.Bucket != nil || u.Size != nil) {
		return fmt.Errorf("%w: %s has no content", common.ErrValidation, f.Kind)
	}
	return nil
}

// finalizeUpdate consumes the pending update upload staged under the new
// key of f. The update reserved only the growth, so whatever the new
// content does not use of the old size plus that reservation is released.
// The new size must be given and may not exceed what was reserved.
func (s *FileService) finalizeUpdate(ctx context.Context, tx dbx.DBTX, old, f *models.File, sized bool) error {
	repo := s.repomanager.Uploads(tx)

	up, err := repo.GetByKey(ctx, f.Key, f.Bucket)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading upload: %w", err)
	}
	if !up.IsUpdate || up.FileID != f.ID {
		return fmt.Errorf("%w: key belongs to another upload", common.ErrKeyAlreadyExists)
	}
	if !sized {
		return fmt.Errorf("%w: Size is required to finalize an upload", common.ErrValidation)
	}

	release, err := unusedReservation(old.Size, up.Size, f.Size)
	if err != nil {
		return err
	}

	if _, err := repo.DeleteByKey(ctx, f.Key, f.Bucket); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: upload was already finalized", common.ErrKeyAlreadyExists)
		}
		return fmt.Errorf("error consuming upload: %w", err)
	}

	if release == 0 {
		return nil
	}
	if _, err := s.quotas.AdjustUsedTx(ctx, tx, f.OwnerID, -int64(release)); err != nil {
		return err
	}
	return nil
}

// unusedReservation returns oldSize+reserved-newSize. newSize above
// oldSize+reserved is rejected.
func unusedReservation(oldSize, reserved, newSize uint64) (uint64, error) {
	if reserved > math.MaxUint64-oldSize {
		return 0, fmt.Errorf("%w: reservation overflows", common.ErrValidation)
	}
	total := oldSize + reserved
	if newSize > total {
		return 0, fmt.Errorf("%w: size %d exceeds the %d reserved by the upload", common.ErrValidation, newSize, total)
	}
	release := total - newSize
	if release > math.MaxInt64 {
		return 0, fmt.Errorf("%w: release of %d does not fit a quota delta", common.ErrValidation, release)
	}
	return release, nil
}

// UpdateFiles applies every update in its own transaction. Failures are
// collected per file and do not fail the batch.
func (s *FileService) UpdateFiles(ctx context.Context, reqs []UpdateFileRequest) ([]string, []UpdateFailure) {
	var (
		updated []string
		failed  []UpdateFailure
	)
	for _, req := range reqs {
		f, err := s.UpdateFile(ctx, req)
		if err == nil {
			updated = append(updated, f.ID)
			continue
		}

		msg := err.Error()
		if !common.IsClientError(err) {
			s.logger.Error(ctx, "batch update failed", "id", req.ID, "error", err)
			msg = common.ErrorInternal.Error()
		}
		failed = append(failed, UpdateFailure{ID: req.ID, Reason: common.Reason(err), Message: msg})
	}
	return updated, failed
}

// DeleteFile soft-deletes a node and, for folders, its whole subtree.
// Children go before their parent, folders before files, then by name.
// Quota is not released here; storage cleanup reports it separately.
func (s *FileService) DeleteFile(ctx context.Context, id string) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}

	var deleted []string
	var root *models.File

	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Files(tx)

		f, err := lockedNode(ctx, repo, id)
		if err != nil {
			return err
		}
		root = f

		return deleteTree(ctx, repo, f, map[string]bool{}, &deleted)
	})
	if err != nil {
		return false, err
	}

	s.invalidate(ctx, deleted...)
	s.logger.Info(ctx, "file deleted", "id", id, "owner_id", root.OwnerID, "nodes", len(deleted))
	publish(ctx, s.events, s.logger, events.Event{
		Type:    events.FileDeleted,
		OwnerID: root.OwnerID,
		FileID:  root.ID,
		Key:     root.Key,
		Bucket:  root.Bucket,
		Size:    root.Size,
	})
	return true, nil
}

func deleteTree(ctx context.Context, repo files.Repository, f *models.File, seen map[string]bool, deleted *[]string) error {
	if seen[f.ID] {
		return fmt.Errorf("file tree cycle at %s", f.ID)
	}
	seen[f.ID] = true

	if f.IsFolder() {
		children, err := repo.ListByFolder(ctx, f.ID, false)
		if err != nil {
			return fmt.Errorf("error listing folder %s: %w", f.ID, err)
		}
		for _, c := range children {
			if err := deleteTree(ctx, repo, c, seen, deleted); err != nil {
				return err
			}
		}
	}

	if err := repo.MarkDeleted(ctx, f.ID); err != nil {
		return fmt.Errorf("error deleting %s: %w", f.ID, err)
	}
	*deleted = append(*deleted, f.ID)
	return nil
}

// GetByID returns a node. Live nodes are served from the cache when
// possible.
func (s *FileService) GetByID(ctx context.Context, id string, includeDeleted bool) (*models.File, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	if !includeDeleted {
		if f, err := s.cache.Get(ctx, id); err == nil {
			return f, nil
		}
	}

	f, err := s.repomanager.Files(s.tx.Conn()).GetByID(ctx, id, includeDeleted)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if !f.Deleted {
		if err := s.cache.Set(ctx, f); err != nil {
			s.logger.Warn(ctx, "failed to cache file", "id", id, "error", err)
		}
	}
	return f, nil
}

func (s *FileService) GetByKey(ctx context.Context, key string) (*models.File, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key is required", common.ErrValidation)
	}

	f, err := s.repomanager.Files(s.tx.Conn()).GetByKey(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return f, nil
}

// GetFilesByFolder lists the live children of folderID, folders first. An
// empty folderID means the owner's root folder.
func (s *FileService) GetFilesByFolder(ctx context.Context, folderID, ownerID string, foldersOnly bool) ([]*models.File, error) {
	repo := s.repomanager.Files(s.tx.Conn())

	if folderID == "" {
		root, err := s.roots.resolve(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		folderID = root.ID
	} else {
		if err := checkID(folderID); err != nil {
			return nil, err
		}
		folder, err := repo.GetByID(ctx, folderID, false)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrFileNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("error reading folder: %w", err)
		}
		if ownerID != "" && folder.OwnerID != ownerID {
			return nil, common.ErrFileNotFound
		}
		if !folder.IsFolder() {
			return nil, common.ErrParentNotFolder
		}
	}

	list, err := repo.ListByFolder(ctx, folderID, foldersOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing folder: %w", err)
	}
	return list, nil
}

// IsOwner reports whether userID owns fileID. A missing file is an error,
// not a false answer.
func (s *FileService) IsOwner(ctx context.Context, fileID, userID string) (bool, error) {
	f, err := s.GetByID(ctx, fileID, false)
	if err != nil {
		return false, err
	}
	return f.OwnerID == userID, nil
}

func (s *FileService) invalidate(ctx context.Context, ids ...string) {
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.logger.Warn(ctx, "failed to invalidate cached files", "ids", ids, "error", err)
	}
}
