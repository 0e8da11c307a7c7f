package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdSet is a budgeted, targeted grouping of ads inside a campaign.
type AdSet struct {
	ID                   int64
	Name                 string
	CampaignID           int64
	Status               Status
	DailyBudget          decimal.Decimal
	StartDate            time.Time
	EndDate              time.Time
	TargetingDescription string
	Impressions          int64
	Clicks               int64
	Spend                decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Metrics derives CPM and CPC for the ad set.
func (s *AdSet) Metrics() Metrics {
	return CalculateMetrics(s.Impressions, s.Clicks, s.Spend)
}
