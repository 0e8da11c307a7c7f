package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ads-dashboard/internal/core/domain"
	"ads-dashboard/internal/core/port"
)

// MockHierarchyRepository is a testify mock of port.HierarchyRepository.
// WithinTx invokes the callback with the mock itself unless a different
// return is configured, so expectations set on the mock also cover calls
// made inside transactions.
type MockHierarchyRepository struct {
	mock.Mock
}

// NewMockHierarchyRepository creates a mock and asserts its expectations
// when the test ends.
func NewMockHierarchyRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockHierarchyRepository {
	m := &MockHierarchyRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ port.HierarchyRepository = (*MockHierarchyRepository)(nil)

func (m *MockHierarchyRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, repo port.HierarchyRepository) error) error {
	ret := m.Called(ctx, fn)
	if len(ret) > 0 {
		return ret.Error(0)
	}
	return fn(ctx, m)
}

func (m *MockHierarchyRepository) InsertCampaign(ctx context.Context, c *domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockHierarchyRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	ret := m.Called(ctx)
	list, _ := ret.Get(0).([]domain.Campaign)
	return list, ret.Error(1)
}

func (m *MockHierarchyRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	ret := m.Called(ctx, id)
	c, _ := ret.Get(0).(*domain.Campaign)
	return c, ret.Error(1)
}

func (m *MockHierarchyRepository) UpdateCampaign(ctx context.Context, id int64, patch port.CampaignPatch, at time.Time) (*domain.Campaign, error) {
	ret := m.Called(ctx, id, patch, at)
	c, _ := ret.Get(0).(*domain.Campaign)
	return c, ret.Error(1)
}

func (m *MockHierarchyRepository) DeleteCampaign(ctx context.Context, id int64) (bool, error) {
	ret := m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

func (m *MockHierarchyRepository) InsertAdSet(ctx context.Context, s *domain.AdSet) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockHierarchyRepository) ListAdSets(ctx context.Context) ([]domain.AdSet, error) {
	ret := m.Called(ctx)
	list, _ := ret.Get(0).([]domain.AdSet)
	return list, ret.Error(1)
}

func (m *MockHierarchyRepository) ListAdSetsByCampaign(ctx context.Context, campaignID int64) ([]domain.AdSet, error) {
	ret := m.Called(ctx, campaignID)
	list, _ := ret.Get(0).([]domain.AdSet)
	return list, ret.Error(1)
}

func (m *MockHierarchyRepository) GetAdSet(ctx context.Context, id int64) (*domain.AdSet, error) {
	ret := m.Called(ctx, id)
	s, _ := ret.Get(0).(*domain.AdSet)
	return s, ret.Error(1)
}

func (m *MockHierarchyRepository) LockAdSet(ctx context.Context, id int64) (*domain.AdSet, error) {
	ret := m.Called(ctx, id)
	s, _ := ret.Get(0).(*domain.AdSet)
	return s, ret.Error(1)
}

func (m *MockHierarchyRepository) UpdateAdSet(ctx context.Context, id int64, patch port.AdSetPatch, at time.Time) (*domain.AdSet, error) {
	ret := m.Called(ctx, id, patch, at)
	s, _ := ret.Get(0).(*domain.AdSet)
	return s, ret.Error(1)
}

func (m *MockHierarchyRepository) SoftDeleteAdSet(ctx context.Context, id int64, at time.Time) (bool, error) {
	ret := m.Called(ctx, id, at)
	return ret.Bool(0), ret.Error(1)
}

func (m *MockHierarchyRepository) InsertAd(ctx context.Context, a *domain.Ad) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockHierarchyRepository) ListAds(ctx context.Context) ([]domain.Ad, error) {
	ret := m.Called(ctx)
	list, _ := ret.Get(0).([]domain.Ad)
	return list, ret.Error(1)
}

func (m *MockHierarchyRepository) ListAdsByAdSet(ctx context.Context, adSetID int64) ([]domain.Ad, error) {
	ret := m.Called(ctx, adSetID)
	list, _ := ret.Get(0).([]domain.Ad)
	return list, ret.Error(1)
}

func (m *MockHierarchyRepository) GetAd(ctx context.Context, id int64) (*domain.Ad, error) {
	ret := m.Called(ctx, id)
	a, _ := ret.Get(0).(*domain.Ad)
	return a, ret.Error(1)
}

func (m *MockHierarchyRepository) UpdateAd(ctx context.Context, id int64, patch port.AdPatch, at time.Time) (*domain.Ad, error) {
	ret := m.Called(ctx, id, patch, at)
	a, _ := ret.Get(0).(*domain.Ad)
	return a, ret.Error(1)
}

func (m *MockHierarchyRepository) SoftDeleteAd(ctx context.Context, id int64, at time.Time) (bool, error) {
	ret := m.Called(ctx, id, at)
	return ret.Bool(0), ret.Error(1)
}

func (m *MockHierarchyRepository) SoftDeleteAdsByAdSet(ctx context.Context, adSetID int64, at time.Time) (int64, error) {
	ret := m.Called(ctx, adSetID, at)
	n, _ := ret.Get(0).(int64)
	return n, ret.Error(1)
}
