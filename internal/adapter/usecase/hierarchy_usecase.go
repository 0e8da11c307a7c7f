package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"ads-dashboard/internal/core/domain"
	"ads-dashboard/internal/core/port"
)

// HierarchyUseCase enforces the referential and cascade rules of the
// campaign hierarchy on top of a port.HierarchyRepository. It implements
// port.HierarchyUseCase.
type HierarchyUseCase struct {
	repo   port.HierarchyRepository
	logger *slog.Logger

	// now returns the timestamp written on every mutation. Postgres keeps
	// microseconds, so values are truncated to match what is read back.
	now func() time.Time
}

// NewHierarchyUseCase creates a use case over repo. A nil logger discards
// output.
func NewHierarchyUseCase(repo port.HierarchyRepository, logger *slog.Logger) *HierarchyUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HierarchyUseCase{
		repo:   repo,
		logger: logger,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

var _ port.HierarchyUseCase = (*HierarchyUseCase)(nil)

// CreateCampaign stores a new campaign with zeroed counters. No references
// are checked.
func (u *HierarchyUseCase) CreateCampaign(ctx context.Context, in port.CreateCampaignInput) (*domain.Campaign, error) {
	now := u.now()
	c := &domain.Campaign{
		Name:        in.Name,
		Status:      statusOrDefault(in.Status),
		Objective:   in.Objective,
		TotalBudget: in.TotalBudget,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Spend:       decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.repo.InsertCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *HierarchyUseCase) GetCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	list, err := u.repo.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Campaign{}
	}
	return list, nil
}

func (u *HierarchyUseCase) GetCampaignByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	return u.repo.GetCampaign(ctx, id)
}

// UpdateCampaign applies the supplied fields and refreshes updated_at. A
// missing campaign yields (nil, nil).
func (u *HierarchyUseCase) UpdateCampaign(ctx context.Context, in port.UpdateCampaignInput) (*domain.Campaign, error) {
	c, err := u.repo.UpdateCampaign(ctx, in.ID, in.CampaignPatch, u.now())
	if errors.Is(err, port.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCampaign hard-deletes the campaign. Ad sets are not cascaded; the
// storage constraint decides whether a referenced campaign may go.
func (u *HierarchyUseCase) DeleteCampaign(ctx context.Context, id int64) (bool, error) {
	return u.repo.DeleteCampaign(ctx, id)
}

// CreateAdSet checks that the campaign exists before inserting. Nothing is
// written when the check fails.
func (u *HierarchyUseCase) CreateAdSet(ctx context.Context, in port.CreateAdSetInput) (*domain.AdSet, error) {
	var created *domain.AdSet
	err := u.repo.WithinTx(ctx, func(ctx context.Context, repo port.HierarchyRepository) error {
		camp, err := repo.GetCampaign(ctx, in.CampaignID)
		if err != nil {
			return err
		}
		if camp == nil {
			return port.MissingParent("ad set", "campaign", in.CampaignID)
		}
		now := u.now()
		s := &domain.AdSet{
			Name:                 in.Name,
			CampaignID:           in.CampaignID,
			Status:               statusOrDefault(in.Status),
			DailyBudget:          in.DailyBudget,
			StartDate:            in.StartDate,
			EndDate:              in.EndDate,
			TargetingDescription: in.TargetingDescription,
			Spend:                decimal.Zero,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err = repo.InsertAdSet(ctx, s); err != nil {
			return err
		}
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (u *HierarchyUseCase) GetAdSets(ctx context.Context) ([]domain.AdSet, error) {
	list, err := u.repo.ListAdSets(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.AdSet{}
	}
	return list, nil
}

func (u *HierarchyUseCase) GetAdSetsByCampaign(ctx context.Context, campaignID int64) ([]domain.AdSet, error) {
	list, err := u.repo.ListAdSetsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.AdSet{}
	}
	return list, nil
}

func (u *HierarchyUseCase) GetAdSetByID(ctx context.Context, id int64) (*domain.AdSet, error) {
	return u.repo.GetAdSet(ctx, id)
}

// UpdateAdSet applies the supplied fields. An update carrying nothing but
// the id is a no-op reported as absent. A new campaign_id must resolve.
func (u *HierarchyUseCase) UpdateAdSet(ctx context.Context, in port.UpdateAdSetInput) (*domain.AdSet, error) {
	if in.AdSetPatch.Empty() {
		return nil, nil
	}
	var updated *domain.AdSet
	err := u.repo.WithinTx(ctx, func(ctx context.Context, repo port.HierarchyRepository) error {
		current, err := repo.LockAdSet(ctx, in.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}
		if err = checkTransition("ad set", in.ID, current.Status, in.Status); err != nil {
			return err
		}
		if in.CampaignID != nil {
			camp, err := repo.GetCampaign(ctx, *in.CampaignID)
			if err != nil {
				return err
			}
			if camp == nil {
				return port.MissingParent("ad set", "campaign", *in.CampaignID)
			}
		}
		updated, err = repo.UpdateAdSet(ctx, in.ID, in.AdSetPatch, u.now())
		if errors.Is(err, port.ErrNotFound) {
			updated = nil
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAdSet soft-deletes every ad of the ad set and then the ad set
// itself inside one transaction. The ad set row stays locked for the whole
// cascade so no ad can be attached to it meanwhile. It returns false when
// the ad set does not exist.
func (u *HierarchyUseCase) DeleteAdSet(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := u.repo.WithinTx(ctx, func(ctx context.Context, repo port.HierarchyRepository) error {
		s, err := repo.LockAdSet(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return nil
		}
		now := u.now()
		n, err := repo.SoftDeleteAdsByAdSet(ctx, id, now)
		if err != nil {
			return fmt.Errorf("cascade ads of ad set %d: %w", id, err)
		}
		deleted, err = repo.SoftDeleteAdSet(ctx, id, now)
		if err != nil {
			return err
		}
		u.logger.DebugContext(ctx, "ad set deleted", slog.Int64("ad_set_id", id), slog.Int64("ads_cascaded", n))
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// CreateAd checks that the ad set exists and is not deleted before
// inserting.
func (u *HierarchyUseCase) CreateAd(ctx context.Context, in port.CreateAdInput) (*domain.Ad, error) {
	var created *domain.Ad
	err := u.repo.WithinTx(ctx, func(ctx context.Context, repo port.HierarchyRepository) error {
		if err := requireLiveAdSet(ctx, repo, in.AdSetID); err != nil {
			return err
		}
		now := u.now()
		a := &domain.Ad{
			Name:           in.Name,
			AdSetID:        in.AdSetID,
			Status:         statusOrDefault(in.Status),
			CreativeType:   in.CreativeType,
			MediaURL:       in.MediaURL,
			Headline:       in.Headline,
			BodyText:       in.BodyText,
			CallToAction:   in.CallToAction,
			DestinationURL: in.DestinationURL,
			Spend:          decimal.Zero,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.InsertAd(ctx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (u *HierarchyUseCase) GetAds(ctx context.Context) ([]domain.Ad, error) {
	list, err := u.repo.ListAds(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Ad{}
	}
	return list, nil
}

func (u *HierarchyUseCase) GetAdsByAdSet(ctx context.Context, adSetID int64) ([]domain.Ad, error) {
	list, err := u.repo.ListAdsByAdSet(ctx, adSetID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Ad{}
	}
	return list, nil
}

func (u *HierarchyUseCase) GetAdByID(ctx context.Context, id int64) (*domain.Ad, error) {
	return u.repo.GetAd(ctx, id)
}

// UpdateAd applies the supplied fields and refreshes updated_at. When the
// ad moves to another ad set, that ad set must exist and be live.
func (u *HierarchyUseCase) UpdateAd(ctx context.Context, in port.UpdateAdInput) (*domain.Ad, error) {
	var updated *domain.Ad
	err := u.repo.WithinTx(ctx, func(ctx context.Context, repo port.HierarchyRepository) error {
		current, err := repo.GetAd(ctx, in.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}
		if err = checkTransition("ad", in.ID, current.Status, in.Status); err != nil {
			return err
		}
		if in.AdSetID != nil {
			if err = requireLiveAdSet(ctx, repo, *in.AdSetID); err != nil {
				return err
			}
		}
		updated, err = repo.UpdateAd(ctx, in.ID, in.AdPatch, u.now())
		if errors.Is(err, port.ErrNotFound) {
			updated = nil
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAd soft-deletes the ad. Deleting an already deleted ad succeeds.
func (u *HierarchyUseCase) DeleteAd(ctx context.Context, id int64) (bool, error) {
	return u.repo.SoftDeleteAd(ctx, id, u.now())
}

// GetSummary folds the counters of every record in the hierarchy into one
// dashboard summary.
func (u *HierarchyUseCase) GetSummary(ctx context.Context) (*domain.Summary, error) {
	campaigns, err := u.repo.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	adSets, err := u.repo.ListAdSets(ctx)
	if err != nil {
		return nil, err
	}
	ads, err := u.repo.ListAds(ctx)
	if err != nil {
		return nil, err
	}

	s := &domain.Summary{Campaigns: len(campaigns), AdSets: len(adSets), Ads: len(ads), Spend: decimal.Zero}
	for _, c := range campaigns {
		s.Add(c.Impressions, c.Clicks, c.Spend)
	}
	for _, as := range adSets {
		s.Add(as.Impressions, as.Clicks, as.Spend)
	}
	for _, a := range ads {
		s.Add(a.Impressions, a.Clicks, a.Spend)
	}
	s.Finish()
	return s, nil
}

// requireLiveAdSet locks the ad set and rejects it when missing or deleted.
func requireLiveAdSet(ctx context.Context, repo port.HierarchyRepository, id int64) error {
	s, err := repo.LockAdSet(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return port.MissingParent("ad", "ad set", id)
	}
	if s.Status.IsDeleted() {
		return port.DeletedParent("ad", "ad set", id)
	}
	return nil
}

// checkTransition rejects status changes that would enter or leave Deleted
// through an update.
func checkTransition(entity string, id int64, current domain.Status, next *domain.Status) error {
	if next == nil {
		return nil
	}
	if *next == domain.StatusDeleted {
		return fmt.Errorf("%s %d: status Deleted is set by delete only: %w", entity, id, port.ErrInvalidTransition)
	}
	if current.IsDeleted() {
		return fmt.Errorf("%s %d is deleted: %w", entity, id, port.ErrInvalidTransition)
	}
	return nil
}

func statusOrDefault(s domain.Status) domain.Status {
	if s == "" {
		return domain.StatusActive
	}
	return s
}
