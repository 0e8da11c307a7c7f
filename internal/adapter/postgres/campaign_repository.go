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

const campaignColumns = `id, name, status, objective, total_budget, start_date, end_date,
    impressions, clicks, spend, created_at, updated_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Status,
		&c.Objective,
		&c.TotalBudget,
		&c.StartDate,
		&c.EndDate,
		&c.Impressions,
		&c.Clicks,
		&c.Spend,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// InsertCampaign inserts the campaign and reads back the stored row.
func (r *HierarchyRepository) InsertCampaign(ctx context.Context, c *domain.Campaign) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO campaigns (name, status, objective, total_budget, start_date, end_date,
                               impressions, clicks, spend, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING `+campaignColumns,
		c.Name, string(c.Status), c.Objective, c.TotalBudget, c.StartDate, c.EndDate,
		c.Impressions, c.Clicks, c.Spend, c.CreatedAt, c.UpdatedAt)
	stored, err := scanCampaign(row)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	*c = stored
	return nil
}

// ListCampaigns returns every campaign ordered by id.
func (r *HierarchyRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return list, nil
}

// GetCampaign returns a campaign by id.
func (r *HierarchyRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign %d: %w", id, err)
	}
	return &c, nil
}

// UpdateCampaign writes only the supplied columns.
func (r *HierarchyRepository) UpdateCampaign(ctx context.Context, id int64, p port.CampaignPatch, at time.Time) (*domain.Campaign, error) {
	var b setBuilder
	if p.Name != nil {
		b.add("name", *p.Name)
	}
	if p.Status != nil {
		b.add("status", string(*p.Status))
	}
	if p.Objective != nil {
		b.add("objective", *p.Objective)
	}
	if p.TotalBudget != nil {
		b.add("total_budget", *p.TotalBudget)
	}
	if p.StartDate != nil {
		b.add("start_date", *p.StartDate)
	}
	if p.EndDate != nil {
		b.add("end_date", *p.EndDate)
	}
	query, args := b.build("campaigns", id, at, campaignColumns)
	c, err := scanCampaign(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update campaign %d: %w", id, err)
	}
	return &c, nil
}

// DeleteCampaign removes the row. The ad_sets foreign key refuses the
// delete while ad sets still reference the campaign.
func (r *HierarchyRepository) DeleteCampaign(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return false, fmt.Errorf("delete campaign %d: %w", id, port.ErrStillReferenced)
	}
	if err != nil {
		return false, fmt.Errorf("delete campaign %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
