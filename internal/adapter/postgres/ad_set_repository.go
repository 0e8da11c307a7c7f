package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"ads-dashboard/internal/core/domain"
	"ads-dashboard/internal/core/port"
)

const adSetColumns = `id, name, campaign_id, status, daily_budget, start_date, end_date,
    targeting_description, impressions, clicks, spend, created_at, updated_at`

func scanAdSet(row pgx.Row) (domain.AdSet, error) {
	var s domain.AdSet
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.CampaignID,
		&s.Status,
		&s.DailyBudget,
		&s.StartDate,
		&s.EndDate,
		&s.TargetingDescription,
		&s.Impressions,
		&s.Clicks,
		&s.Spend,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func collectAdSets(rows pgx.Rows) ([]domain.AdSet, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AdSet, error) {
		return scanAdSet(row)
	})
}

// InsertAdSet inserts the ad set. A missing campaign surfaces as a
// ReferenceError.
func (r *HierarchyRepository) InsertAdSet(ctx context.Context, s *domain.AdSet) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO ad_sets (name, campaign_id, status, daily_budget, start_date, end_date,
                             targeting_description, impressions, clicks, spend, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING `+adSetColumns,
		s.Name, s.CampaignID, string(s.Status), s.DailyBudget, s.StartDate, s.EndDate,
		s.TargetingDescription, s.Impressions, s.Clicks, s.Spend, s.CreatedAt, s.UpdatedAt)
	stored, err := scanAdSet(row)
	if isForeignKeyViolation(err) {
		return port.MissingParent("ad set", "campaign", s.CampaignID)
	}
	if err != nil {
		return fmt.Errorf("insert ad set: %w", err)
	}
	*s = stored
	return nil
}

// ListAdSets returns every ad set ordered by id.
func (r *HierarchyRepository) ListAdSets(ctx context.Context) ([]domain.AdSet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+adSetColumns+` FROM ad_sets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list ad sets: %w", err)
	}
	list, err := collectAdSets(rows)
	if err != nil {
		return nil, fmt.Errorf("list ad sets: %w", err)
	}
	return list, nil
}

// ListAdSetsByCampaign returns the ad sets of one campaign ordered by id.
func (r *HierarchyRepository) ListAdSetsByCampaign(ctx context.Context, campaignID int64) ([]domain.AdSet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+adSetColumns+` FROM ad_sets WHERE campaign_id = $1 ORDER BY id`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list ad sets of campaign %d: %w", campaignID, err)
	}
	list, err := collectAdSets(rows)
	if err != nil {
		return nil, fmt.Errorf("list ad sets of campaign %d: %w", campaignID, err)
	}
	return list, nil
}

func (r *HierarchyRepository) GetAdSet(ctx context.Context, id int64) (*domain.AdSet, error) {
	return r.getAdSet(ctx, `SELECT `+adSetColumns+` FROM ad_sets WHERE id = $1`, id)
}

// LockAdSet selects the ad set FOR UPDATE. Outside a transaction the lock is
// released as soon as the statement ends.
func (r *HierarchyRepository) LockAdSet(ctx context.Context, id int64) (*domain.AdSet, error) {
	return r.getAdSet(ctx, `SELECT `+adSetColumns+` FROM ad_sets WHERE id = $1 FOR UPDATE`, id)
}

func (r *HierarchyRepository) getAdSet(ctx context.Context, query string, id int64) (*domain.AdSet, error) {
	s, err := scanAdSet(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ad set %d: %w", id, err)
	}
	return &s, nil
}

// UpdateAdSet writes only the supplied columns.
func (r *HierarchyRepository) UpdateAdSet(ctx context.Context, id int64, p port.AdSetPatch, at time.Time) (*domain.AdSet, error) {
	var b setBuilder
	if p.Name != nil {
		b.add("name", *p.Name)
	}
	if p.CampaignID != nil {
		b.add("campaign_id", *p.CampaignID)
	}
	if p.Status != nil {
		b.add("status", string(*p.Status))
	}
	if p.DailyBudget != nil {
		b.add("daily_budget", *p.DailyBudget)
	}
	if p.StartDate != nil {
		b.add("start_date", *p.StartDate)
	}
	if p.EndDate != nil {
		b.add("end_date", *p.EndDate)
	}
	if p.TargetingDescription != nil {
		b.add("targeting_description", *p.TargetingDescription)
	}
	query, args := b.build("ad_sets", id, at, adSetColumns)
	s, err := scanAdSet(r.db.QueryRow(ctx, query, args...))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, port.ErrNotFound
	case isForeignKeyViolation(err) && p.CampaignID != nil:
		return nil, port.MissingParent("ad set", "campaign", *p.CampaignID)
	case err != nil:
		return nil, fmt.Errorf("update ad set %d: %w", id, err)
	}
	return &s, nil
}

// SoftDeleteAdSet marks the ad set Deleted.
func (r *HierarchyRepository) SoftDeleteAdSet(ctx context.Context, id int64, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE ad_sets SET status = 'Deleted', `+touchExpr(2)+` WHERE id = $1`, id, at)
	if err != nil {
		return false, fmt.Errorf("soft delete ad set %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
