package httpadapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"ads-dashboard/internal/core/domain"
	"ads-dashboard/internal/core/port"
)

// metricPlaces is the precision of CPM and CPC in responses.
const metricPlaces = 4

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type counters struct {
	Impressions int64           `json:"impressions"`
	Clicks      int64           `json:"clicks"`
	Spend       decimal.Decimal `json:"spend"`
	CPM         decimal.Decimal `json:"cpm"`
	CPC         decimal.Decimal `json:"cpc"`
}

func newCounters(impressions, clicks int64, spend decimal.Decimal, m domain.Metrics) counters {
	return counters{
		Impressions: impressions,
		Clicks:      clicks,
		Spend:       spend,
		CPM:         m.CPM.Round(metricPlaces),
		CPC:         m.CPC.Round(metricPlaces),
	}
}

type campaignView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Status      domain.Status   `json:"status"`
	Objective   string          `json:"objective"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	counters
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newCampaignView(c domain.Campaign) campaignView {
	return campaignView{
		ID:          c.ID,
		Name:        c.Name,
		Status:      c.Status,
		Objective:   c.Objective,
		TotalBudget: c.TotalBudget,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		counters:    newCounters(c.Impressions, c.Clicks, c.Spend, c.Metrics()),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type adSetView struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	CampaignID           int64           `json:"campaign_id"`
	Status               domain.Status   `json:"status"`
	DailyBudget          decimal.Decimal `json:"daily_budget"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	TargetingDescription string          `json:"targeting_description"`
	counters
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newAdSetView(s domain.AdSet) adSetView {
	return adSetView{
		ID:                   s.ID,
		Name:                 s.Name,
		CampaignID:           s.CampaignID,
		Status:               s.Status,
		DailyBudget:          s.DailyBudget,
		StartDate:            s.StartDate,
		EndDate:              s.EndDate,
		TargetingDescription: s.TargetingDescription,
		counters:             newCounters(s.Impressions, s.Clicks, s.Spend, s.Metrics()),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

type adView struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	AdSetID        int64               `json:"ad_set_id"`
	Status         domain.Status       `json:"status"`
	CreativeType   domain.CreativeType `json:"creative_type"`
	MediaURL       string              `json:"media_url"`
	Headline       string              `json:"headline"`
	BodyText       string              `json:"body_text"`
	CallToAction   string              `json:"call_to_action"`
	DestinationURL string              `json:"destination_url"`
	counters
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newAdView(a domain.Ad) adView {
	return adView{
		ID:             a.ID,
		Name:           a.Name,
		AdSetID:        a.AdSetID,
		Status:         a.Status,
		CreativeType:   a.CreativeType,
		MediaURL:       a.MediaURL,
		Headline:       a.Headline,
		BodyText:       a.BodyText,
		CallToAction:   a.CallToAction,
		DestinationURL: a.DestinationURL,
		counters:       newCounters(a.Impressions, a.Clicks, a.Spend, a.Metrics()),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

type summaryView struct {
	Campaigns int `json:"campaigns"`
	AdSets    int `json:"ad_sets"`
	Ads       int `json:"ads"`
	counters
}

func newSummaryView(s domain.Summary) summaryView {
	return summaryView{
		Campaigns: s.Campaigns,
		AdSets:    s.AdSets,
		Ads:       s.Ads,
		counters:  newCounters(s.Impressions, s.Clicks, s.Spend, s.Metrics),
	}
}

func mapSlice[T, V any](in []T, f func(T) V) []V {
	out := make([]V, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; the status line is already sent
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// statusFor maps an error kind to its HTTP status.
func statusFor(k port.Kind) int {
	switch k {
	case port.KindNotFound:
		return http.StatusNotFound
	case port.KindValidation:
		return http.StatusBadRequest
	case port.KindReferentialViolation:
		return http.StatusUnprocessableEntity
	case port.KindInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err with the status of its kind. Storage failures are
// logged and their detail is not sent to the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := port.KindOf(err)
	status := statusFor(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", RequestIDFrom(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		msg = "internal error"
	}
	h.writeJSON(w, status, errorResponse{Error: msg, Kind: kind.String()})
}

func (h *Handler) writeNotFound(w http.ResponseWriter, entity string, id int64) {
	h.writeJSON(w, http.StatusNotFound, errorResponse{
		Error: fmt.Sprintf("%s %d not found", entity, id),
		Kind:  port.KindNotFound.String(),
	})
}
