package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ads-dashboard/internal/core/domain"
)

// HierarchyRepository is the persistence port for the campaign hierarchy. It
// is an outbound port in hexagonal architecture. Point lookups return
// (nil, nil) when the row does not exist; partial updates and deletes
// report a missing row with ErrNotFound or false. Implementations must map
// their foreign-key violations to ErrReferentialViolation.
type HierarchyRepository interface {
	// WithinTx runs fn with a repository bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Nested calls reuse the outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo HierarchyRepository) error) error

	// InsertCampaign stores c and fills in ID, counters and timestamps.
	InsertCampaign(ctx context.Context, c *domain.Campaign) error
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// UpdateCampaign applies patch and sets updated_at to at, or one
	// microsecond past the stored value when at is not later.
	UpdateCampaign(ctx context.Context, id int64, patch CampaignPatch, at time.Time) (*domain.Campaign, error)
	// DeleteCampaign physically removes the row.
	DeleteCampaign(ctx context.Context, id int64) (bool, error)

	InsertAdSet(ctx context.Context, s *domain.AdSet) error
	ListAdSets(ctx context.Context) ([]domain.AdSet, error)
	ListAdSetsByCampaign(ctx context.Context, campaignID int64) ([]domain.AdSet, error)
	GetAdSet(ctx context.Context, id int64) (*domain.AdSet, error)
	// LockAdSet is GetAdSet that also holds a row lock until the surrounding
	// transaction ends.
	LockAdSet(ctx context.Context, id int64) (*domain.AdSet, error)
	UpdateAdSet(ctx context.Context, id int64, patch AdSetPatch, at time.Time) (*domain.AdSet, error)
	// SoftDeleteAdSet flips the ad set to Deleted.
	SoftDeleteAdSet(ctx context.Context, id int64, at time.Time) (bool, error)

	InsertAd(ctx context.Context, a *domain.Ad) error
	ListAds(ctx context.Context) ([]domain.Ad, error)
	ListAdsByAdSet(ctx context.Context, adSetID int64) ([]domain.Ad, error)
	GetAd(ctx context.Context, id int64) (*domain.Ad, error)
	UpdateAd(ctx context.Context, id int64, patch AdPatch, at time.Time) (*domain.Ad, error)
	SoftDeleteAd(ctx context.Context, id int64, at time.Time) (bool, error)
	// SoftDeleteAdsByAdSet flips every ad of the ad set to Deleted and
	// returns how many rows were touched.
	SoftDeleteAdsByAdSet(ctx context.Context, adSetID int64, at time.Time) (int64, error)
}

// CampaignPatch lists campaign columns to change. Nil fields are left as
// they are.
type CampaignPatch struct {
	Name        *string
	Status      *domain.Status
	Objective   *string
	TotalBudget *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
}

// AdSetPatch lists ad set columns to change.
type AdSetPatch struct {
	Name                 *string
	CampaignID           *int64
	Status               *domain.Status
	DailyBudget          *decimal.Decimal
	StartDate            *time.Time
	EndDate              *time.Time
	TargetingDescription *string
}

// Empty reports whether no column would change.
func (p AdSetPatch) Empty() bool {
	return p.Name == nil && p.CampaignID == nil && p.Status == nil && p.DailyBudget == nil &&
		p.StartDate == nil && p.EndDate == nil && p.TargetingDescription == nil
}

// AdPatch lists ad columns to change.
type AdPatch struct {
	Name           *string
	AdSetID        *int64
	Status         *domain.Status
	CreativeType   *domain.CreativeType
	MediaURL       *string
	Headline       *string
	BodyText       *string
	CallToAction   *string
	DestinationURL *string
}
