package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign represents a top-level advertising initiative. Money fields are
// exact decimals and round-trip through numeric(10,2) columns unchanged.
// Impressions, Clicks and Spend are fed externally and never written here.
type Campaign struct {
	ID          int64
	Name        string
	Status      Status
	Objective   string
	TotalBudget decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
	Impressions int64
	Clicks      int64
	Spend       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Metrics derives CPM and CPC for the campaign.
func (c *Campaign) Metrics() Metrics {
	return CalculateMetrics(c.Impressions, c.Clicks, c.Spend)
}
