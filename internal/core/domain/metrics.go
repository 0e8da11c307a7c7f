package domain

import "github.com/shopspring/decimal"

var thousand = decimal.NewFromInt(1000)

// Metrics holds derived cost figures. They are computed on read and never
// stored.
type Metrics struct {
	CPM decimal.Decimal // cost per thousand impressions
	CPC decimal.Decimal // cost per click
}

// CalculateMetrics returns CPM and CPC for the given counters. A zero
// denominator yields zero instead of failing.
func CalculateMetrics(impressions, clicks int64, spend decimal.Decimal) Metrics {
	m := Metrics{CPM: decimal.Zero, CPC: decimal.Zero}
	if impressions > 0 {
		m.CPM = spend.Mul(thousand).Div(decimal.NewFromInt(impressions))
	}
	if clicks > 0 {
		m.CPC = spend.Div(decimal.NewFromInt(clicks))
	}
	return m
}

// Summary aggregates counters across every tier of the hierarchy for the
// dashboard overview.
type Summary struct {
	Campaigns   int
	AdSets      int
	Ads         int
	Impressions int64
	Clicks      int64
	Spend       decimal.Decimal
	Metrics     Metrics
}

// Add folds one record's counters into the summary. Metrics are not
// refreshed until Finish is called.
func (s *Summary) Add(impressions, clicks int64, spend decimal.Decimal) {
	s.Impressions += impressions
	s.Clicks += clicks
	s.Spend = s.Spend.Add(spend)
}

// Finish computes the summary metrics from the accumulated totals.
func (s *Summary) Finish() {
	s.Metrics = CalculateMetrics(s.Impressions, s.Clicks, s.Spend)
}
