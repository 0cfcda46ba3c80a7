package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/logging"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/repomanager"
)

// maxCASAttempts bounds the compare-and-swap loop of AdjustUsed.
const maxCASAttempts = 32

// QuotaService owns the per-owner storage ledger.
type QuotaService struct {
	tx           dbx.Transactor
	repomanager  repomanager.RepositoryManager
	defaultLimit uint64
	logger       logging.Logger
}

func NewQuotaService(tx dbx.Transactor, m repomanager.RepositoryManager, defaultLimit uint64, logger logging.Logger) *QuotaService {
	return &QuotaService{
		tx:           tx,
		repomanager:  m,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// GetOrCreate returns the quota of ownerID, creating it with the default
// limit on first access.
func (s *QuotaService) GetOrCreate(ctx context.Context, ownerID string) (*models.Quota, error) {
	return s.getOrCreate(ctx, s.tx.Conn(), ownerID)
}

func (s *QuotaService) getOrCreate(ctx context.Context, db dbx.DBTX, ownerID string) (*models.Quota, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", common.ErrValidation)
	}

	repo := s.repomanager.Quotas(db)

	q, err := repo.Get(ctx, ownerID)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error reading quota: %w", err)
	}

	// A concurrent creator may win; the insert is a no-op then and the
	// second read sees its row.
	if _, err := repo.Insert(ctx, &models.Quota{OwnerID: ownerID, Limit: s.defaultLimit}); err != nil {
		return nil, fmt.Errorf("error creating quota: %w", err)
	}

	q, err = repo.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error reading quota: %w", err)
	}
	return q, nil
}

// AdjustUsed atomically adds delta to the owner's used counter. A positive
// delta that would cross the limit fails with ErrQuotaExceeded and a
// negative one that would go below zero with ErrNegativeUsage; the ledger is
// unchanged in both cases.
func (s *QuotaService) AdjustUsed(ctx context.Context, ownerID string, delta int64) (*models.Quota, error) {
	return s.AdjustUsedTx(ctx, s.tx.Conn(), ownerID, delta)
}

// AdjustUsedTx is AdjustUsed running on db, so that callers can make the
// ledger change part of their own transaction.
func (s *QuotaService) AdjustUsedTx(ctx context.Context, db dbx.DBTX, ownerID string, delta int64) (*models.Quota, error) {
	repo := s.repomanager.Quotas(db)

	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		q, err := s.getOrCreate(ctx, db, ownerID)
		if err != nil {
			return nil, err
		}
		if delta == 0 {
			return q, nil
		}

		used, err := applyDelta(q.Used, q.Limit, delta)
		if err != nil {
			return nil, err
		}

		ok, err := repo.CompareAndSwapUsed(ctx, ownerID, q.Used, used)
		if err != nil {
			return nil, fmt.Errorf("error updating quota: %w", err)
		}
		if ok {
			q.Used = used
			return q, nil
		}
		s.logger.Debug(ctx, "quota changed concurrently, retrying", "owner_id", ownerID, "attempt", attempt+1)
	}

	return nil, fmt.Errorf("%w: owner %s", common.ErrQuotaContention, ownerID)
}

// applyDelta computes used+delta and checks it stays inside [0, limit]
// without overflowing.
func applyDelta(used, limit uint64, delta int64) (uint64, error) {
	if delta >= 0 {
		d := uint64(delta)
		if d > limit || used > limit-d {
			return 0, fmt.Errorf("%w: used %d, limit %d, requested %d", common.ErrQuotaExceeded, used, limit, d)
		}
		return used + d, nil
	}

	d := uint64(-(delta + 1)) + 1
	if d > used {
		return 0, fmt.Errorf("%w: used %d, released %d", common.ErrNegativeUsage, used, d)
	}
	return used - d, nil
}

// IsAllowedToGetQuota reports whether requestingUser may read the quota of
// ownerID. Only owners may read their own quota.
func (s *QuotaService) IsAllowedToGetQuota(requestingUser, ownerID string) bool {
	return requestingUser != "" && requestingUser == ownerID
}
