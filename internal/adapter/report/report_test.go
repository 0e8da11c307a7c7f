package report

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ads-dashboard/internal/core/domain"
)

func TestWriteHierarchy(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	campaigns := []domain.Campaign{{
		ID: 1, Name: "Summer", Status: domain.StatusActive, Objective: "Traffic",
		TotalBudget: decimal.RequireFromString("5000.00"), StartDate: day, EndDate: day.AddDate(0, 1, 0),
		Impressions: 1000, Clicks: 50, Spend: decimal.RequireFromString("25.50"),
	}}
	adSets := []domain.AdSet{{
		ID: 1, Name: "Young adults", CampaignID: 1, Status: domain.StatusPaused,
		DailyBudget: decimal.RequireFromString("100.00"), StartDate: day, EndDate: day,
		TargetingDescription: "18-24", Spend: decimal.Zero,
	}}
	ads := []domain.Ad{
		{ID: 1, Name: "Banner", AdSetID: 1, Status: domain.StatusActive, CreativeType: domain.CreativeImage, Spend: decimal.Zero},
		{ID: 2, Name: "Clip", AdSetID: 1, Status: domain.StatusDeleted, CreativeType: domain.CreativeVideo, Spend: decimal.Zero},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHierarchy(&buf, campaigns, adSets, ads))

	xl, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer xl.Close()

	assert.Equal(t, []string{SheetCampaigns, SheetAdSets, SheetAds}, xl.GetSheetList())

	rows, err := xl.GetRows(SheetCampaigns)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Summer", rows[1][1])
	assert.Equal(t, "2024-06-01", rows[1][5])
	assert.Equal(t, "1000", rows[1][7])

	cpm, err := strconv.ParseFloat(rows[1][10], 64)
	require.NoError(t, err)
	assert.InDelta(t, 25.5, cpm, 1e-9)
	cpc, err := strconv.ParseFloat(rows[1][11], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.51, cpc, 1e-9)

	rows, err = xl.GetRows(SheetAdSets)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Paused", rows[1][3])

	rows, err = xl.GetRows(SheetAds)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Video", rows[2][4])
	assert.Equal(t, "Deleted", rows[2][3])
}

func TestWriteHierarchyEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHierarchy(&buf, nil, nil, nil))

	xl, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer xl.Close()

	for _, sheet := range []string{SheetCampaigns, SheetAdSets, SheetAds} {
		rows, err := xl.GetRows(sheet)
		require.NoError(t, err)
		assert.Len(t, rows, 1, sheet)
	}
}
