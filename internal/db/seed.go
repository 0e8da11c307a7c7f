package db

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"ads-dashboard/internal/core/domain"
	"ads-dashboard/internal/core/port"
)

var (
	seedObjectives = []string{"Awareness", "Traffic", "Conversions"}
	seedCreatives  = []domain.CreativeType{domain.CreativeImage, domain.CreativeVideo, domain.CreativeCarousel}
	seedAudiences  = []string{"18-24, music fans", "25-34, tech enthusiasts", "35-44, sports"}
)

type seedAdSet struct {
	adSet domain.AdSet
	ads   []domain.Ad
}

type seedCampaign struct {
	campaign domain.Campaign
	adSets   []seedAdSet
}

// Seed inserts a demo hierarchy of 3 campaigns, each with 2 ad sets of 3 ads.
// Ads get random delivery counters which are rolled up into their parents.
// Nothing is written when a campaign already exists. It reports whether
// rows were inserted.
func Seed(ctx context.Context, repo port.HierarchyRepository, now time.Time) (bool, error) {
	tree := demoHierarchy(rand.New(rand.NewPCG(uint64(now.UnixNano()), 1)), now)

	seeded := false
	err := repo.WithinTx(ctx, func(ctx context.Context, tx port.HierarchyRepository) error {
		existing, err := tx.ListCampaigns(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		for _, sc := range tree {
			c := sc.campaign
			if err = tx.InsertCampaign(ctx, &c); err != nil {
				return err
			}
			for _, ss := range sc.adSets {
				s := ss.adSet
				s.CampaignID = c.ID
				if err = tx.InsertAdSet(ctx, &s); err != nil {
					return err
				}
				for _, a := range ss.ads {
					a.AdSetID = s.ID
					if err = tx.InsertAd(ctx, &a); err != nil {
						return err
					}
				}
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed demo data: %w", err)
	}
	return seeded, nil
}

func demoHierarchy(r *rand.Rand, now time.Time) []seedCampaign {
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 1, 0)

	var tree []seedCampaign
	for i := 1; i <= 3; i++ {
		sc := seedCampaign{campaign: domain.Campaign{
			Name:        fmt.Sprintf("Campaign %d", i),
			Status:      domain.StatusActive,
			Objective:   seedObjectives[(i-1)%len(seedObjectives)],
			TotalBudget: decimal.NewFromInt(int64(5000 * i)),
			StartDate:   start,
			EndDate:     end,
			Spend:       decimal.Zero,
			CreatedAt:   now,
			UpdatedAt:   now,
		}}
		for j := 1; j <= 2; j++ {
			ss := seedAdSet{adSet: domain.AdSet{
				Name:                 fmt.Sprintf("Ad Set %d.%d", i, j),
				Status:               domain.StatusActive,
				DailyBudget:          decimal.NewFromInt(int64(100 * j)),
				StartDate:            start,
				EndDate:              end,
				TargetingDescription: seedAudiences[r.IntN(len(seedAudiences))],
				Spend:                decimal.Zero,
				CreatedAt:            now,
				UpdatedAt:            now,
			}}
			for k := 1; k <= 3; k++ {
				impressions := int64(1000 + r.IntN(49000))
				clicks := impressions * int64(1+r.IntN(40)) / 1000
				// 0.50 to 10.49 per thousand impressions
				spend := decimal.NewFromInt(impressions * int64(50+r.IntN(1000))).Shift(-5).Round(2)

				ss.ads = append(ss.ads, domain.Ad{
					Name:           fmt.Sprintf("Ad %d.%d.%d", i, j, k),
					Status:         domain.StatusActive,
					CreativeType:   seedCreatives[r.IntN(len(seedCreatives))],
					MediaURL:       fmt.Sprintf("https://example.com/media/%d-%d-%d.jpg", i, j, k),
					Headline:       fmt.Sprintf("Headline %d.%d.%d", i, j, k),
					BodyText:       "Discover what is new this season.",
					CallToAction:   "Learn More",
					DestinationURL: fmt.Sprintf("https://example.com/landing/%d", i),
					Impressions:    impressions,
					Clicks:         clicks,
					Spend:          spend,
					CreatedAt:      now,
					UpdatedAt:      now,
				})
				ss.adSet.Impressions += impressions
				ss.adSet.Clicks += clicks
				ss.adSet.Spend = ss.adSet.Spend.Add(spend)
			}
			sc.campaign.Impressions += ss.adSet.Impressions
			sc.campaign.Clicks += ss.adSet.Clicks
			sc.campaign.Spend = sc.campaign.Spend.Add(ss.adSet.Spend)
			sc.adSets = append(sc.adSets, ss)
		}
		tree = append(tree, sc)
	}
	return tree
}
