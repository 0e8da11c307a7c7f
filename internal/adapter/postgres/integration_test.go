//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ads-dashboard/internal/adapter/usecase"
	"ads-dashboard/internal/core/domain"
	"ads-dashboard/internal/core/port"
	"ads-dashboard/internal/db"
)

// Run with: PSQL_TEST_ADDRESS=postgres://... go test -tags integration ./internal/adapter/postgres/
func newTestRepository(t *testing.T) *HierarchyRepository {
	t.Helper()
	addr := os.Getenv("PSQL_TEST_ADDRESS")
	if addr == "" {
		t.Skip("PSQL_TEST_ADDRESS is not set")
	}
	require.NoError(t, db.Migrate(addr))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE ads, ad_sets, campaigns RESTART IDENTITY`)
	require.NoError(t, err)
	return NewHierarchyRepository(pool)
}

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func testCampaign() *domain.Campaign {
	return &domain.Campaign{
		Name: "Summer", Status: domain.StatusActive, Objective: "Traffic",
		TotalBudget: decimal.RequireFromString("99999999.99"), StartDate: day, EndDate: day.AddDate(0, 1, 0),
		Spend: decimal.Zero, CreatedAt: day, UpdatedAt: day,
	}
}

func TestIntegrationRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	c := testCampaign()
	require.NoError(t, repo.InsertCampaign(ctx, c))
	assert.Equal(t, int64(1), c.ID)

	s := &domain.AdSet{
		Name: "Young adults", CampaignID: c.ID, Status: domain.StatusPaused,
		DailyBudget: decimal.RequireFromString("0.01"), StartDate: day, EndDate: day,
		TargetingDescription: "18-24", Spend: decimal.Zero, CreatedAt: day, UpdatedAt: day,
	}
	require.NoError(t, repo.InsertAdSet(ctx, s))

	got, err := repo.GetAdSet(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.DailyBudget.Equal(decimal.RequireFromString("0.01")), got.DailyBudget.String())
	assert.Equal(t, domain.StatusPaused, got.Status)

	gotCampaign, err := repo.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, gotCampaign.TotalBudget.Equal(decimal.RequireFromString("99999999.99")))

	missing, err := repo.GetCampaign(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegrationForeignKeys(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	err := repo.InsertAdSet(ctx, &domain.AdSet{
		Name: "orphan", CampaignID: 42, Status: domain.StatusActive, DailyBudget: decimal.NewFromInt(1),
		StartDate: day, EndDate: day, Spend: decimal.Zero, CreatedAt: day, UpdatedAt: day,
	})
	assert.Equal(t, port.KindReferentialViolation, port.KindOf(err))

	c := testCampaign()
	require.NoError(t, repo.InsertCampaign(ctx, c))
	require.NoError(t, repo.InsertAdSet(ctx, &domain.AdSet{
		Name: "s", CampaignID: c.ID, Status: domain.StatusActive, DailyBudget: decimal.NewFromInt(1),
		StartDate: day, EndDate: day, Spend: decimal.Zero, CreatedAt: day, UpdatedAt: day,
	}))

	deleted, err := repo.DeleteCampaign(ctx, c.ID)
	assert.False(t, deleted)
	assert.ErrorIs(t, err, port.ErrStillReferenced)
}

func TestIntegrationUpdateTouchesStrictly(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	c := testCampaign()
	require.NoError(t, repo.InsertCampaign(ctx, c))

	first, err := repo.UpdateCampaign(ctx, c.ID, port.CampaignPatch{}, day)
	require.NoError(t, err)
	second, err := repo.UpdateCampaign(ctx, c.ID, port.CampaignPatch{Name: ptrTo("Renamed")}, day)
	require.NoError(t, err)

	assert.True(t, first.UpdatedAt.After(c.UpdatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, "Renamed", second.Name)

	_, err = repo.UpdateCampaign(ctx, 404, port.CampaignPatch{}, day)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestIntegrationDeleteAdSetCascades(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	u := usecase.NewHierarchyUseCase(repo, nil)

	c, err := u.CreateCampaign(ctx, port.CreateCampaignInput{
		Name: "c", Objective: "o", TotalBudget: decimal.NewFromInt(10), StartDate: day, EndDate: day,
	})
	require.NoError(t, err)
	s, err := u.CreateAdSet(ctx, port.CreateAdSetInput{
		Name: "s", CampaignID: c.ID, DailyBudget: decimal.NewFromInt(1), StartDate: day, EndDate: day,
	})
	require.NoError(t, err)
	for range 2 {
		_, err = u.CreateAd(ctx, port.CreateAdInput{
			Name: "a", AdSetID: s.ID, CreativeType: domain.CreativeCarousel,
			MediaURL: "https://example.com/a.jpg", DestinationURL: "https://example.com",
		})
		require.NoError(t, err)
	}

	ok, err := u.DeleteAdSet(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ads, err := u.GetAdsByAdSet(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, ads, 2)
	for _, a := range ads {
		assert.Equal(t, domain.StatusDeleted, a.Status)
		assert.Equal(t, domain.CreativeCarousel, a.CreativeType)
	}

	_, err = u.CreateAd(ctx, port.CreateAdInput{
		Name: "late", AdSetID: s.ID, CreativeType: domain.CreativeImage,
		MediaURL: "https://example.com/b.jpg", DestinationURL: "https://example.com",
	})
	assert.Equal(t, port.KindReferentialViolation, port.KindOf(err))
}

func ptrTo[T any](v T) *T { return &v }
