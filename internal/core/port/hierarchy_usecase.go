package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ads-dashboard/internal/core/domain"
)

// HierarchyUseCase defines the operations exposed over the campaign → ad set
// → ad hierarchy. It is the primary port into the application domain.
//
// Lookups and updates return a nil record when the id does not exist;
// deletes return false. Every other failure is returned as an error that
// KindOf can classify. Inputs are expected to have passed shape validation
// already; only cross-entity references are checked here.
type HierarchyUseCase interface {
	CreateCampaign(ctx context.Context, in CreateCampaignInput) (*domain.Campaign, error)
	GetCampaigns(ctx context.Context) ([]domain.Campaign, error)
	GetCampaignByID(ctx context.Context, id int64) (*domain.Campaign, error)
	// UpdateCampaign always refreshes updated_at, even when only the id is
	// supplied. It never cascades.
	UpdateCampaign(ctx context.Context, in UpdateCampaignInput) (*domain.Campaign, error)
	// DeleteCampaign removes the row without touching its ad sets.
	DeleteCampaign(ctx context.Context, id int64) (bool, error)

	// CreateAdSet fails with a ReferenceError when the campaign is missing.
	CreateAdSet(ctx context.Context, in CreateAdSetInput) (*domain.AdSet, error)
	GetAdSets(ctx context.Context) ([]domain.AdSet, error)
	// GetAdSetsByCampaign returns an empty slice both for a campaign without
	// ad sets and for a campaign that does not exist.
	GetAdSetsByCampaign(ctx context.Context, campaignID int64) ([]domain.AdSet, error)
	GetAdSetByID(ctx context.Context, id int64) (*domain.AdSet, error)
	// UpdateAdSet returns nil when nothing besides the id is supplied.
	UpdateAdSet(ctx context.Context, in UpdateAdSetInput) (*domain.AdSet, error)
	// DeleteAdSet soft-deletes the ad set and all of its ads in one
	// transaction, children first.
	DeleteAdSet(ctx context.Context, id int64) (bool, error)

	// CreateAd fails with a ReferenceError when the ad set is missing or
	// deleted.
	CreateAd(ctx context.Context, in CreateAdInput) (*domain.Ad, error)
	GetAds(ctx context.Context) ([]domain.Ad, error)
	GetAdsByAdSet(ctx context.Context, adSetID int64) ([]domain.Ad, error)
	GetAdByID(ctx context.Context, id int64) (*domain.Ad, error)
	UpdateAd(ctx context.Context, in UpdateAdInput) (*domain.Ad, error)
	// DeleteAd is an idempotent soft delete.
	DeleteAd(ctx context.Context, id int64) (bool, error)

	// GetSummary totals counters over every campaign, ad set and ad.
	GetSummary(ctx context.Context) (*domain.Summary, error)
}

// CreateCampaignInput carries the fields of a new campaign. An empty Status
// defaults to Active.
type CreateCampaignInput struct {
	Name        string
	Status      domain.Status
	Objective   string
	TotalBudget decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
}

type UpdateCampaignInput struct {
	ID int64
	CampaignPatch
}

type CreateAdSetInput struct {
	Name                 string
	CampaignID           int64
	Status               domain.Status
	DailyBudget          decimal.Decimal
	StartDate            time.Time
	EndDate              time.Time
	TargetingDescription string
}

type UpdateAdSetInput struct {
	ID int64
	AdSetPatch
}

type CreateAdInput struct {
	Name           string
	AdSetID        int64
	Status         domain.Status
	CreativeType   domain.CreativeType
	MediaURL       string
	Headline       string
	BodyText       string
	CallToAction   string
	DestinationURL string
}

type UpdateAdInput struct {
	ID int64
	AdPatch
}
