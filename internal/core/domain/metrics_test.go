package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateMetrics(t *testing.T) {
	tests := []struct {
		name        string
		impressions int64
		clicks      int64
		spend       string
		wantCPM     string
		wantCPC     string
	}{
		{name: "typical", impressions: 1000, clicks: 50, spend: "25.50", wantCPM: "25.5", wantCPC: "0.51"},
		{name: "no traffic", impressions: 0, clicks: 0, spend: "0", wantCPM: "0", wantCPC: "0"},
		{name: "spend without clicks", impressions: 2000, clicks: 0, spend: "10", wantCPM: "5", wantCPC: "0"},
		{name: "spend without impressions", impressions: 0, clicks: 4, spend: "2", wantCPM: "0", wantCPC: "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CalculateMetrics(tt.impressions, tt.clicks, decimal.RequireFromString(tt.spend))
			assert.True(t, m.CPM.Equal(decimal.RequireFromString(tt.wantCPM)), "cpm = %s", m.CPM)
			assert.True(t, m.CPC.Equal(decimal.RequireFromString(tt.wantCPC)), "cpc = %s", m.CPC)
		})
	}
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Add(600, 30, decimal.RequireFromString("15.25"))
	s.Add(400, 20, decimal.RequireFromString("10.25"))
	s.Finish()

	assert.Equal(t, int64(1000), s.Impressions)
	assert.Equal(t, int64(50), s.Clicks)
	assert.True(t, s.Spend.Equal(decimal.RequireFromString("25.50")))
	assert.True(t, s.Metrics.CPM.Equal(decimal.RequireFromString("25.5")))
	assert.True(t, s.Metrics.CPC.Equal(decimal.RequireFromString("0.51")))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusDeleted.IsDeleted())
	assert.False(t, Status("Archived").Valid())
	assert.True(t, CreativeCarousel.Valid())
	assert.False(t, CreativeType("Audio").Valid())
}
