package httpadapter

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ads-dashboard/internal/adapter/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// handleSummary returns dashboard totals over every campaign, ad set and ad.
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.GetSummary(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newSummaryView(*s))
}

// handleHierarchyReport streams an xlsx workbook with one sheet per tier.
// The workbook is built fully before the first byte is written so that a
// failure can still be reported with a status code.
func (h *Handler) handleHierarchyReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	campaigns, err := h.svc.GetCampaigns(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	adSets, err := h.svc.GetAdSets(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ads, err := h.svc.GetAds(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err = report.WriteHierarchy(&buf, campaigns, adSets, ads); err != nil {
		h.writeError(w, r, fmt.Errorf("build hierarchy report: %w", err))
		return
	}
	name := fmt.Sprintf("hierarchy-%s.xlsx", h.now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err = buf.WriteTo(w); err != nil {
		h.logger.Error("write report error", slog.Any("error", err))
	}
}
