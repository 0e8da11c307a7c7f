package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ads-dashboard/internal/core/domain"
	"ads-dashboard/internal/core/port"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func seedCampaign(t *testing.T, r *Repository) *domain.Campaign {
	t.Helper()
	c := &domain.Campaign{Name: "c", Status: domain.StatusActive, TotalBudget: decimal.NewFromInt(100), CreatedAt: t0, UpdatedAt: t0}
	require.NoError(t, r.InsertCampaign(context.Background(), c))
	return c
}

func TestInsertAssignsSequentialIDs(t *testing.T) {
	r := NewRepository()
	a := seedCampaign(t, r)
	b := seedCampaign(t, r)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	list, err := r.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestForeignKeys(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()

	err := r.InsertAdSet(ctx, &domain.AdSet{CampaignID: 99})
	assert.ErrorIs(t, err, port.ErrReferentialViolation)

	err = r.InsertAd(ctx, &domain.Ad{AdSetID: 99})
	assert.ErrorIs(t, err, port.ErrReferentialViolation)

	c := seedCampaign(t, r)
	require.NoError(t, r.InsertAdSet(ctx, &domain.AdSet{CampaignID: c.ID}))

	ok, err := r.DeleteCampaign(ctx, c.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, err, port.ErrStillReferenced)
}

func TestUpdateBumpsTimestampWhenClockStalls(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	c := seedCampaign(t, r)

	name := "renamed"
	got, err := r.UpdateCampaign(ctx, c.ID, port.CampaignPatch{Name: &name}, t0)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.True(t, got.UpdatedAt.After(c.UpdatedAt))

	_, err = r.UpdateCampaign(ctx, 404, port.CampaignPatch{}, t0)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	boom := errors.New("boom")

	err := r.WithinTx(ctx, func(ctx context.Context, tx port.HierarchyRepository) error {
		c := &domain.Campaign{Name: "tx"}
		require.NoError(t, tx.InsertCampaign(ctx, c))
		// nested calls share the transaction
		return tx.WithinTx(ctx, func(ctx context.Context, _ port.HierarchyRepository) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	list, err := r.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// the id sequence is rolled back with the data
	c := seedCampaign(t, r)
	assert.Equal(t, int64(1), c.ID)
}

func TestWithinTxRollsBackWhenContextEnds(t *testing.T) {
	r := NewRepository()
	c := seedCampaign(t, r)

	ctx, cancel := context.WithCancel(context.Background())
	err := r.WithinTx(ctx, func(ctx context.Context, tx port.HierarchyRepository) error {
		require.NoError(t, tx.InsertAdSet(ctx, &domain.AdSet{Name: "s", CampaignID: c.ID}))
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	list, err := r.ListAdSets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	called := false
	err = r.WithinTx(ctx, func(context.Context, port.HierarchyRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRetainedTxRepositoryTakesTheLock(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()

	var kept port.HierarchyRepository
	require.NoError(t, r.WithinTx(ctx, func(_ context.Context, tx port.HierarchyRepository) error {
		kept = tx
		return nil
	}))

	entered := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- r.WithinTx(ctx, func(context.Context, port.HierarchyRepository) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	listed := make(chan struct{})
	go func() {
		_, _ = kept.ListCampaigns(ctx)
		close(listed)
	}()

	select {
	case <-listed:
		t.Fatal("retained repository read while another transaction held the lock")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	require.NoError(t, <-txDone)
	<-listed
}

func TestMoneyRoundsToCents(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	c := seedCampaign(t, r)
	s := &domain.AdSet{CampaignID: c.ID, DailyBudget: decimal.RequireFromString("0.01")}
	require.NoError(t, r.InsertAdSet(ctx, s))

	got, err := r.GetAdSet(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.01", got.DailyBudget.String())
}

func TestSoftDeleteAdsByAdSet(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	c := seedCampaign(t, r)
	s1 := &domain.AdSet{CampaignID: c.ID}
	s2 := &domain.AdSet{CampaignID: c.ID}
	require.NoError(t, r.InsertAdSet(ctx, s1))
	require.NoError(t, r.InsertAdSet(ctx, s2))
	for _, sid := range []int64{s1.ID, s1.ID, s2.ID} {
		require.NoError(t, r.InsertAd(ctx, &domain.Ad{AdSetID: sid, Status: domain.StatusActive}))
	}

	n, err := r.SoftDeleteAdsByAdSet(ctx, s1.ID, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	other, err := r.ListAdsByAdSet(ctx, s2.ID)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, domain.StatusActive, other[0].Status)
}
