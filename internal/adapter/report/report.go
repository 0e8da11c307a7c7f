// Package report exports the campaign hierarchy as an xlsx workbook.
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"ads-dashboard/internal/core/domain"
)

const (
	SheetCampaigns = "Campaigns"
	SheetAdSets    = "Ad Sets"
	SheetAds       = "Ads"

	dateLayout = "2006-01-02"
)

var (
	campaignHeader = []any{"ID", "Name", "Status", "Objective", "Total Budget", "Start Date", "End Date",
		"Impressions", "Clicks", "Spend", "CPM", "CPC"}
	adSetHeader = []any{"ID", "Name", "Campaign ID", "Status", "Daily Budget", "Start Date", "End Date",
		"Targeting", "Impressions", "Clicks", "Spend", "CPM", "CPC"}
	adHeader = []any{"ID", "Name", "Ad Set ID", "Status", "Creative Type", "Headline", "Call To Action",
		"Destination URL", "Impressions", "Clicks", "Spend", "CPM", "CPC"}
)

// WriteHierarchy writes a workbook with one sheet per tier to w. Every row
// carries the record's counters and its CPM and CPC.
func WriteHierarchy(w io.Writer, campaigns []domain.Campaign, adSets []domain.AdSet, ads []domain.Ad) error {
	xl := excelize.NewFile()
	defer xl.Close()

	if err := xl.SetSheetName(xl.GetSheetName(0), SheetCampaigns); err != nil {
		return err
	}
	rows := make([][]any, 0, len(campaigns))
	for _, c := range campaigns {
		m := c.Metrics()
		rows = append(rows, []any{c.ID, c.Name, string(c.Status), c.Objective, money(c.TotalBudget),
			c.StartDate.Format(dateLayout), c.EndDate.Format(dateLayout),
			c.Impressions, c.Clicks, money(c.Spend), metric(m.CPM), metric(m.CPC)})
	}
	if err := writeSheet(xl, SheetCampaigns, campaignHeader, rows); err != nil {
		return err
	}

	rows = make([][]any, 0, len(adSets))
	for _, s := range adSets {
		m := s.Metrics()
		rows = append(rows, []any{s.ID, s.Name, s.CampaignID, string(s.Status), money(s.DailyBudget),
			s.StartDate.Format(dateLayout), s.EndDate.Format(dateLayout), s.TargetingDescription,
			s.Impressions, s.Clicks, money(s.Spend), metric(m.CPM), metric(m.CPC)})
	}
	if err := writeSheet(xl, SheetAdSets, adSetHeader, rows); err != nil {
		return err
	}

	rows = make([][]any, 0, len(ads))
	for _, a := range ads {
		m := a.Metrics()
		rows = append(rows, []any{a.ID, a.Name, a.AdSetID, string(a.Status), string(a.CreativeType),
			a.Headline, a.CallToAction, a.DestinationURL,
			a.Impressions, a.Clicks, money(a.Spend), metric(m.CPM), metric(m.CPC)})
	}
	if err := writeSheet(xl, SheetAds, adHeader, rows); err != nil {
		return err
	}

	xl.SetActiveSheet(0)
	return xl.Write(w)
}

func writeSheet(xl *excelize.File, name string, header []any, rows [][]any) error {
	idx, err := xl.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx == -1 {
		if _, err := xl.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}
	if err := xl.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = xl.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", name, i+2, err)
		}
	}
	return nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func metric(d decimal.Decimal) float64 {
	return d.Round(4).InexactFloat64()
}
