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

const adColumns = `id, name, ad_set_id, status, creative_type, media_url, headline, body_text,
    call_to_action, destination_url, impressions, clicks, spend, created_at, updated_at`

func scanAd(row pgx.Row) (domain.Ad, error) {
	var a domain.Ad
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.AdSetID,
		&a.Status,
		&a.CreativeType,
		&a.MediaURL,
		&a.Headline,
		&a.BodyText,
		&a.CallToAction,
		&a.DestinationURL,
		&a.Impressions,
		&a.Clicks,
		&a.Spend,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func collectAds(rows pgx.Rows) ([]domain.Ad, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ad, error) {
		return scanAd(row)
	})
}

// InsertAd inserts the ad. A missing ad set surfaces as a ReferenceError.
func (r *HierarchyRepository) InsertAd(ctx context.Context, a *domain.Ad) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO ads (name, ad_set_id, status, creative_type, media_url, headline, body_text,
                         call_to_action, destination_url, impressions, clicks, spend, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING `+adColumns,
		a.Name, a.AdSetID, string(a.Status), string(a.CreativeType), a.MediaURL, a.Headline, a.BodyText,
		a.CallToAction, a.DestinationURL, a.Impressions, a.Clicks, a.Spend, a.CreatedAt, a.UpdatedAt)
	stored, err := scanAd(row)
	if isForeignKeyViolation(err) {
		return port.MissingParent("ad", "ad set", a.AdSetID)
	}
	if err != nil {
		return fmt.Errorf("insert ad: %w", err)
	}
	*a = stored
	return nil
}

// ListAds returns every ad ordered by id.
func (r *HierarchyRepository) ListAds(ctx context.Context) ([]domain.Ad, error) {
	rows, err := r.db.Query(ctx, `SELECT `+adColumns+` FROM ads ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	list, err := collectAds(rows)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	return list, nil
}

// ListAdsByAdSet returns the ads of one ad set ordered by id.
func (r *HierarchyRepository) ListAdsByAdSet(ctx context.Context, adSetID int64) ([]domain.Ad, error) {
	rows, err := r.db.Query(ctx, `SELECT `+adColumns+` FROM ads WHERE ad_set_id = $1 ORDER BY id`, adSetID)
	if err != nil {
		return nil, fmt.Errorf("list ads of ad set %d: %w", adSetID, err)
	}
	list, err := collectAds(rows)
	if err != nil {
		return nil, fmt.Errorf("list ads of ad set %d: %w", adSetID, err)
	}
	return list, nil
}

// GetAd returns an ad by id.
func (r *HierarchyRepository) GetAd(ctx context.Context, id int64) (*domain.Ad, error) {
	a, err := scanAd(r.db.QueryRow(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ad %d: %w", id, err)
	}
	return &a, nil
}

// UpdateAd writes only the supplied columns.
func (r *HierarchyRepository) UpdateAd(ctx context.Context, id int64, p port.AdPatch, at time.Time) (*domain.Ad, error) {
	var b setBuilder
	if p.Name != nil {
		b.add("name", *p.Name)
	}
	if p.AdSetID != nil {
		b.add("ad_set_id", *p.AdSetID)
	}
	if p.Status != nil {
		b.add("status", string(*p.Status))
	}
	if p.CreativeType != nil {
		b.add("creative_type", string(*p.CreativeType))
	}
	if p.MediaURL != nil {
		b.add("media_url", *p.MediaURL)
	}
	if p.Headline != nil {
		b.add("headline", *p.Headline)
	}
	if p.BodyText != nil {
		b.add("body_text", *p.BodyText)
	}
	if p.CallToAction != nil {
		b.add("call_to_action", *p.CallToAction)
	}
	if p.DestinationURL != nil {
		b.add("destination_url", *p.DestinationURL)
	}
	query, args := b.build("ads", id, at, adColumns)
	a, err := scanAd(r.db.QueryRow(ctx, query, args...))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, port.ErrNotFound
	case isForeignKeyViolation(err) && p.AdSetID != nil:
		return nil, port.MissingParent("ad", "ad set", *p.AdSetID)
	case err != nil:
		return nil, fmt.Errorf("update ad %d: %w", id, err)
	}
	return &a, nil
}

// SoftDeleteAd marks the ad Deleted. Repeating it on a deleted ad still
// reports true.
func (r *HierarchyRepository) SoftDeleteAd(ctx context.Context, id int64, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE ads SET status = 'Deleted', `+touchExpr(2)+` WHERE id = $1`, id, at)
	if err != nil {
		return false, fmt.Errorf("soft delete ad %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SoftDeleteAdsByAdSet marks every ad of the ad set Deleted.
func (r *HierarchyRepository) SoftDeleteAdsByAdSet(ctx context.Context, adSetID int64, at time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE ads SET status = 'Deleted', `+touchExpr(2)+` WHERE ad_set_id = $1`, adSetID, at)
	if err != nil {
		return 0, fmt.Errorf("soft delete ads of ad set %d: %w", adSetID, err)
	}
	return tag.RowsAffected(), nil
}
