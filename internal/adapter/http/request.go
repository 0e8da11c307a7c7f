package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"ads-dashboard/internal/core/domain"
	"ads-dashboard/internal/core/port"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Budgets must fit numeric(10,2) exactly.
var (
	minMoney = decimal.RequireFromString("0.01")
	maxMoney = decimal.RequireFromString("99999999.99")
)

// newValidator returns a validator that reads JSON field names and checks
// decimals with the "money" tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// decimals reach validation functions as their exact string form
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		return d.String()
	}, decimal.Decimal{})
	if err := v.RegisterValidation("money", validMoney); err != nil {
		panic(err)
	}
	return v
}

// validMoney accepts positive amounts with at most two fractional digits
// that fit numeric(10,2).
func validMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Equal(d.Round(2)) && d.GreaterThanOrEqual(minMoney) && d.LessThanOrEqual(maxMoney)
}

type createCampaignRequest struct {
	Name        string          `json:"name" validate:"required"`
	Status      domain.Status   `json:"status" validate:"omitempty,oneof=Active Paused Deleted"`
	Objective   string          `json:"objective"`
	TotalBudget decimal.Decimal `json:"total_budget" validate:"money"`
	StartDate   time.Time       `json:"start_date" validate:"required"`
	EndDate     time.Time       `json:"end_date" validate:"required"`
}

func (r createCampaignRequest) input() port.CreateCampaignInput {
	return port.CreateCampaignInput{
		Name:        r.Name,
		Status:      r.Status,
		Objective:   r.Objective,
		TotalBudget: r.TotalBudget,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

type updateCampaignRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Status      *domain.Status   `json:"status" validate:"omitempty,oneof=Active Paused Deleted"`
	Objective   *string          `json:"objective"`
	TotalBudget *decimal.Decimal `json:"total_budget" validate:"omitempty,money"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
}

func (r updateCampaignRequest) input(id int64) port.UpdateCampaignInput {
	return port.UpdateCampaignInput{ID: id, CampaignPatch: port.CampaignPatch{
		Name:        r.Name,
		Status:      r.Status,
		Objective:   r.Objective,
		TotalBudget: r.TotalBudget,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}}
}

type createAdSetRequest struct {
	Name                 string          `json:"name" validate:"required"`
	CampaignID           int64           `json:"campaign_id" validate:"required"`
	Status               domain.Status   `json:"status" validate:"omitempty,oneof=Active Paused Deleted"`
	DailyBudget          decimal.Decimal `json:"daily_budget" validate:"money"`
	StartDate            time.Time       `json:"start_date" validate:"required"`
	EndDate              time.Time       `json:"end_date" validate:"required"`
	TargetingDescription string          `json:"targeting_description"`
}

func (r createAdSetRequest) input() port.CreateAdSetInput {
	return port.CreateAdSetInput{
		Name:                 r.Name,
		CampaignID:           r.CampaignID,
		Status:               r.Status,
		DailyBudget:          r.DailyBudget,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		TargetingDescription: r.TargetingDescription,
	}
}

type updateAdSetRequest struct {
	Name                 *string          `json:"name" validate:"omitempty,min=1"`
	CampaignID           *int64           `json:"campaign_id"`
	Status               *domain.Status   `json:"status" validate:"omitempty,oneof=Active Paused Deleted"`
	DailyBudget          *decimal.Decimal `json:"daily_budget" validate:"omitempty,money"`
	StartDate            *time.Time       `json:"start_date"`
	EndDate              *time.Time       `json:"end_date"`
	TargetingDescription *string          `json:"targeting_description"`
}

func (r updateAdSetRequest) input(id int64) port.UpdateAdSetInput {
	return port.UpdateAdSetInput{ID: id, AdSetPatch: port.AdSetPatch{
		Name:                 r.Name,
		CampaignID:           r.CampaignID,
		Status:               r.Status,
		DailyBudget:          r.DailyBudget,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		TargetingDescription: r.TargetingDescription,
	}}
}

type createAdRequest struct {
	Name           string              `json:"name" validate:"required"`
	AdSetID        int64               `json:"ad_set_id" validate:"required"`
	Status         domain.Status       `json:"status" validate:"omitempty,oneof=Active Paused Deleted"`
	CreativeType   domain.CreativeType `json:"creative_type" validate:"required,oneof=Image Video Carousel"`
	MediaURL       string              `json:"media_url" validate:"required,url"`
	Headline       string              `json:"headline"`
	BodyText       string              `json:"body_text"`
	CallToAction   string              `json:"call_to_action"`
	DestinationURL string              `json:"destination_url" validate:"required,url"`
}

func (r createAdRequest) input() port.CreateAdInput {
	return port.CreateAdInput{
		Name:           r.Name,
		AdSetID:        r.AdSetID,
		Status:         r.Status,
		CreativeType:   r.CreativeType,
		MediaURL:       r.MediaURL,
		Headline:       r.Headline,
		BodyText:       r.BodyText,
		CallToAction:   r.CallToAction,
		DestinationURL: r.DestinationURL,
	}
}

type updateAdRequest struct {
	Name           *string              `json:"name" validate:"omitempty,min=1"`
	AdSetID        *int64               `json:"ad_set_id"`
	Status         *domain.Status       `json:"status" validate:"omitempty,oneof=Active Paused Deleted"`
	CreativeType   *domain.CreativeType `json:"creative_type" validate:"omitempty,oneof=Image Video Carousel"`
	MediaURL       *string              `json:"media_url" validate:"omitempty,url"`
	Headline       *string              `json:"headline"`
	BodyText       *string              `json:"body_text"`
	CallToAction   *string              `json:"call_to_action"`
	DestinationURL *string              `json:"destination_url" validate:"omitempty,url"`
}

func (r updateAdRequest) input(id int64) port.UpdateAdInput {
	return port.UpdateAdInput{ID: id, AdPatch: port.AdPatch{
		Name:           r.Name,
		AdSetID:        r.AdSetID,
		Status:         r.Status,
		CreativeType:   r.CreativeType,
		MediaURL:       r.MediaURL,
		Headline:       r.Headline,
		BodyText:       r.BodyText,
		CallToAction:   r.CallToAction,
		DestinationURL: r.DestinationURL,
	}}
}

// decode reads a JSON body into dst and validates it. Every failure wraps
// port.ErrValidation.
func (h *Handler) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", port.ErrValidation)
		}
		return fmt.Errorf("%w: invalid JSON: %s", port.ErrValidation, err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", port.ErrValidation, describe(err))
	}
	return nil
}

// describe turns validator errors into "field: rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fe.Field()+": "+rule)
	}
	return strings.Join(parts, ", ")
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", port.ErrValidation, raw)
	}
	return id, nil
}
