package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ad is a single creative unit belonging to an ad set. It is a leaf of the
// hierarchy.
type Ad struct {
	ID             int64
	Name           string
	AdSetID        int64
	Status         Status
	CreativeType   CreativeType
	MediaURL       string
	Headline       string
	BodyText       string
	CallToAction   string
	DestinationURL string
	Impressions    int64
	Clicks         int64
	Spend          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Metrics derives CPM and CPC for the ad.
func (a *Ad) Metrics() Metrics {
	return CalculateMetrics(a.Impressions, a.Clicks, a.Spend)
}
