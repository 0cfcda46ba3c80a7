package services

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name    string
		used    uint64
		limit   uint64
		delta   int64
		want    uint64
		wantErr error
	}{
		{name: "reserve within limit", used: 0, limit: 1000, delta: 600, want: 600},
		{name: "reserve up to limit", used: 600, limit: 1000, delta: 400, want: 1000},
		{name: "reserve over limit", used: 600, limit: 1000, delta: 500, wantErr: common.ErrQuotaExceeded},
		{name: "delta bigger than limit", used: 0, limit: 10, delta: math.MaxInt64, wantErr: common.ErrQuotaExceeded},
		{name: "release", used: 600, limit: 1000, delta: -600, want: 0},
		{name: "release below zero", used: 100, limit: 1000, delta: -101, wantErr: common.ErrNegativeUsage},
		{name: "release min int64", used: 100, limit: 1000, delta: math.MinInt64, wantErr: common.ErrNegativeUsage},
		{name: "release while over limit", used: 1200, limit: 1000, delta: -100, want: 1100},
		{name: "reserve while over limit", used: 1200, limit: 1000, delta: 1, wantErr: common.ErrQuotaExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyDelta(tt.used, tt.limit, tt.delta)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Scenario E: a never-seen owner gets the default limit, and the record is
// created exactly once.
func TestGetOrCreate_CreatesOnce(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()

	q1, err := fx.quotas.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), q1.Limit)
	assert.Equal(t, uint64(0), q1.Used)

	q2, err := fx.quotas.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, q1, q2)
	assert.Len(t, fx.store.quotas, 1)
}

func TestGetOrCreate_ConcurrentFirstAccess(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := fx.quotas.GetOrCreate(ctx, "u1")
			assert.NoError(t, err)
			assert.Equal(t, uint64(1000), q.Limit)
		}()
	}
	wg.Wait()
	assert.Len(t, fx.store.quotas, 1)
}

func TestGetOrCreate_EmptyOwner(t *testing.T) {
	fx := newFixture(1000)
	_, err := fx.quotas.GetOrCreate(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAdjustUsed(t *testing.T) {
	fx := newFixture(1000)
	ctx := context.Background()

	q, err := fx.quotas.AdjustUsed(ctx, "u1", 600)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), q.Used)

	_, err = fx.quotas.AdjustUsed(ctx, "u1", 500)
	assert.ErrorIs(t, err, common.ErrQuotaExceeded)
	assert.Equal(t, uint64(600), fx.used("u1"))

	_, err = fx.quotas.AdjustUsed(ctx, "u1", -700)
	assert.ErrorIs(t, err, common.ErrNegativeUsage)
	assert.Equal(t, uint64(600), fx.used("u1"))

	q, err = fx.quotas.AdjustUsed(ctx, "u1", -600)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), q.Used)
}

func TestAdjustUsed_ZeroDeltaDoesNotWrite(t *testing.T) {
	fx := newFixture(1000)
	_, err := fx.quotas.AdjustUsed(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Zero(t, fx.store.casCalls)
}

func TestAdjustUsed_GivesUpAfterContention(t *testing.T) {
	fx := newFixture(1000)
	fx.store.alwaysConflict = true

	_, err := fx.quotas.AdjustUsed(context.Background(), "u1", 10)
	assert.ErrorIs(t, err, common.ErrQuotaContention)
	assert.Equal(t, maxCASAttempts, fx.store.casCalls)
}

// Concurrent writers each asking for slightly more than an equal share: at
// most n-1 can fit and the ledger never goes over the limit.
func TestAdjustUsed_ConcurrentWritersNeverExceedLimit(t *testing.T) {
	const (
		n     = 10
		limit = 1000
	)
	fx := newFixture(limit)
	ctx := context.Background()
	_, err := fx.quotas.GetOrCreate(ctx, "u1")
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.quotas.AdjustUsed(ctx, "u1", limit/n+1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			default:
				assert.ErrorIs(t, err, common.ErrQuotaExceeded)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, successes, n-1)
	assert.Equal(t, uint64(successes*(limit/n+1)), fx.used("u1"))
	assert.LessOrEqual(t, fx.used("u1"), uint64(limit))
}

func TestIsAllowedToGetQuota(t *testing.T) {
	fx := newFixture(1000)
	assert.True(t, fx.quotas.IsAllowedToGetQuota("u1", "u1"))
	assert.False(t, fx.quotas.IsAllowedToGetQuota("u2", "u1"))
	assert.False(t, fx.quotas.IsAllowedToGetQuota("", ""))
}
