// Package memory provides an in-process implementation of
// port.HierarchyRepository. It enforces the same foreign keys as the
// Postgres schema and is used by tests and by the memory storage driver.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"ads-dashboard/internal/core/domain"
	"ads-dashboard/internal/core/port"
)

type state struct {
	campaigns map[int64]domain.Campaign
	adSets    map[int64]domain.AdSet
	ads       map[int64]domain.Ad

	lastCampaignID int64
	lastAdSetID    int64
	lastAdID       int64
}

func (s *state) clone() *state {
	c := *s
	c.campaigns = maps.Clone(s.campaigns)
	c.adSets = maps.Clone(s.adSets)
	c.ads = maps.Clone(s.ads)
	return &c
}

// Repository keeps the hierarchy in maps guarded by one mutex.
// Transactions hold the mutex for their whole duration and restore a
// snapshot when the callback fails.
type Repository struct {
	mu   *sync.Mutex
	st   **state
	inTx bool
	// done is set once the transaction that created this value has ended.
	// A retained transaction repository then locks like a plain one.
	done *atomic.Bool
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	st := &state{
		campaigns: make(map[int64]domain.Campaign),
		adSets:    make(map[int64]domain.AdSet),
		ads:       make(map[int64]domain.Ad),
	}
	return &Repository{mu: &sync.Mutex{}, st: &st}
}

var _ port.HierarchyRepository = (*Repository)(nil)

// active reports whether r is bound to a running transaction that already
// holds the mutex.
func (r *Repository) active() bool {
	return r.inTx && !r.done.Load()
}

func (r *Repository) lock() func() {
	if r.active() {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *Repository) data() *state {
	return *r.st
}

// WithinTx runs fn while holding the repository lock. Any error, including
// a context cancelled before the commit, restores the data as it was before
// fn started.
func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context, repo port.HierarchyRepository) error) error {
	if r.active() {
		return fn(ctx, r)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.data().clone()
	tx := &Repository{mu: r.mu, st: r.st, inTx: true, done: &atomic.Bool{}}
	defer tx.done.Store(true)

	err := fn(ctx, tx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		*r.st = snapshot
		return err
	}
	return nil
}

// touch returns the updated_at value for a mutation at time at. It never
// returns a value that is not after prev.
func touch(prev, at time.Time) time.Time {
	if !at.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return at
}

func byID[T any](m map[int64]T, id func(T) int64) []T {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out
}

// money normalises a decimal to the two fractional digits of numeric(10,2).
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func (r *Repository) InsertCampaign(_ context.Context, c *domain.Campaign) error {
	defer r.lock()()
	st := r.data()
	st.lastCampaignID++
	c.ID = st.lastCampaignID
	c.TotalBudget = money(c.TotalBudget)
	c.Spend = money(c.Spend)
	st.campaigns[c.ID] = *c
	return nil
}

func (r *Repository) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	defer r.lock()()
	return byID(r.data().campaigns, func(c domain.Campaign) int64 { return c.ID }), nil
}

func (r *Repository) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	defer r.lock()()
	c, ok := r.data().campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *Repository) UpdateCampaign(_ context.Context, id int64, p port.CampaignPatch, at time.Time) (*domain.Campaign, error) {
	defer r.lock()()
	st := r.data()
	c, ok := st.campaigns[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Objective != nil {
		c.Objective = *p.Objective
	}
	if p.TotalBudget != nil {
		c.TotalBudget = money(*p.TotalBudget)
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = *p.EndDate
	}
	c.UpdatedAt = touch(c.UpdatedAt, at)
	st.campaigns[id] = c
	return &c, nil
}

func (r *Repository) DeleteCampaign(_ context.Context, id int64) (bool, error) {
	defer r.lock()()
	st := r.data()
	if _, ok := st.campaigns[id]; !ok {
		return false, nil
	}
	for _, s := range st.adSets {
		if s.CampaignID == id {
			return false, fmt.Errorf("delete campaign %d: %w", id, port.ErrStillReferenced)
		}
	}
	delete(st.campaigns, id)
	return true, nil
}

func (r *Repository) InsertAdSet(_ context.Context, s *domain.AdSet) error {
	defer r.lock()()
	st := r.data()
	if _, ok := st.campaigns[s.CampaignID]; !ok {
		return port.MissingParent("ad set", "campaign", s.CampaignID)
	}
	st.lastAdSetID++
	s.ID = st.lastAdSetID
	s.DailyBudget = money(s.DailyBudget)
	s.Spend = money(s.Spend)
	st.adSets[s.ID] = *s
	return nil
}

func (r *Repository) ListAdSets(_ context.Context) ([]domain.AdSet, error) {
	defer r.lock()()
	return byID(r.data().adSets, func(s domain.AdSet) int64 { return s.ID }), nil
}

func (r *Repository) ListAdSetsByCampaign(_ context.Context, campaignID int64) ([]domain.AdSet, error) {
	defer r.lock()()
	all := byID(r.data().adSets, func(s domain.AdSet) int64 { return s.ID })
	out := make([]domain.AdSet, 0, len(all))
	for _, s := range all {
		if s.CampaignID == campaignID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Repository) GetAdSet(_ context.Context, id int64) (*domain.AdSet, error) {
	defer r.lock()()
	s, ok := r.data().adSets[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// LockAdSet is GetAdSet; the repository lock already serialises
// transactions.
func (r *Repository) LockAdSet(ctx context.Context, id int64) (*domain.AdSet, error) {
	return r.GetAdSet(ctx, id)
}

func (r *Repository) UpdateAdSet(_ context.Context, id int64, p port.AdSetPatch, at time.Time) (*domain.AdSet, error) {
	defer r.lock()()
	st := r.data()
	s, ok := st.adSets[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	if p.CampaignID != nil {
		if _, ok := st.campaigns[*p.CampaignID]; !ok {
			return nil, port.MissingParent("ad set", "campaign", *p.CampaignID)
		}
		s.CampaignID = *p.CampaignID
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.DailyBudget != nil {
		s.DailyBudget = money(*p.DailyBudget)
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		s.EndDate = *p.EndDate
	}
	if p.TargetingDescription != nil {
		s.TargetingDescription = *p.TargetingDescription
	}
	s.UpdatedAt = touch(s.UpdatedAt, at)
	st.adSets[id] = s
	return &s, nil
}

func (r *Repository) SoftDeleteAdSet(_ context.Context, id int64, at time.Time) (bool, error) {
	defer r.lock()()
	st := r.data()
	s, ok := st.adSets[id]
	if !ok {
		return false, nil
	}
	s.Status = domain.StatusDeleted
	s.UpdatedAt = touch(s.UpdatedAt, at)
	st.adSets[id] = s
	return true, nil
}

func (r *Repository) InsertAd(_ context.Context, a *domain.Ad) error {
	defer r.lock()()
	st := r.data()
	if _, ok := st.adSets[a.AdSetID]; !ok {
		return port.MissingParent("ad", "ad set", a.AdSetID)
	}
	st.lastAdID++
	a.ID = st.lastAdID
	a.Spend = money(a.Spend)
	st.ads[a.ID] = *a
	return nil
}

func (r *Repository) ListAds(_ context.Context) ([]domain.Ad, error) {
	defer r.lock()()
	return byID(r.data().ads, func(a domain.Ad) int64 { return a.ID }), nil
}

func (r *Repository) ListAdsByAdSet(_ context.Context, adSetID int64) ([]domain.Ad, error) {
	defer r.lock()()
	all := byID(r.data().ads, func(a domain.Ad) int64 { return a.ID })
	out := make([]domain.Ad, 0, len(all))
	for _, a := range all {
		if a.AdSetID == adSetID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *Repository) GetAd(_ context.Context, id int64) (*domain.Ad, error) {
	defer r.lock()()
	a, ok := r.data().ads[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *Repository) UpdateAd(_ context.Context, id int64, p port.AdPatch, at time.Time) (*domain.Ad, error) {
	defer r.lock()()
	st := r.data()
	a, ok := st.ads[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	if p.AdSetID != nil {
		if _, ok := st.adSets[*p.AdSetID]; !ok {
			return nil, port.MissingParent("ad", "ad set", *p.AdSetID)
		}
		a.AdSetID = *p.AdSetID
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.CreativeType != nil {
		a.CreativeType = *p.CreativeType
	}
	if p.MediaURL != nil {
		a.MediaURL = *p.MediaURL
	}
	if p.Headline != nil {
		a.Headline = *p.Headline
	}
	if p.BodyText != nil {
		a.BodyText = *p.BodyText
	}
	if p.CallToAction != nil {
		a.CallToAction = *p.CallToAction
	}
	if p.DestinationURL != nil {
		a.DestinationURL = *p.DestinationURL
	}
	a.UpdatedAt = touch(a.UpdatedAt, at)
	st.ads[id] = a
	return &a, nil
}

func (r *Repository) SoftDeleteAd(_ context.Context, id int64, at time.Time) (bool, error) {
	defer r.lock()()
	st := r.data()
	a, ok := st.ads[id]
	if !ok {
		return false, nil
	}
	a.Status = domain.StatusDeleted
	a.UpdatedAt = touch(a.UpdatedAt, at)
	st.ads[id] = a
	return true, nil
}

func (r *Repository) SoftDeleteAdsByAdSet(_ context.Context, adSetID int64, at time.Time) (int64, error) {
	defer r.lock()()
	st := r.data()
	var n int64
	for id, a := range st.ads {
		if a.AdSetID != adSetID {
			continue
		}
		a.Status = domain.StatusDeleted
		a.UpdatedAt = touch(a.UpdatedAt, at)
		st.ads[id] = a
		n++
	}
	return n, nil
}
