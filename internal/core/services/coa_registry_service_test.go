package services_test

import (
	"context"
	"testing"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	"github.com/bizbooks/gl_engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) ListAccountsByCompany(ctx context.Context, tenantID, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func TestLoadChart_BuildsSnapshot(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockRepo.On("ListAccountsByCompany", mock.Anything, "tenant-1", "company-1").
		Return([]domain.Account{
			{AccountID: "acc-1", Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
			{AccountID: "acc-2", Code: "1100", Name: "Petty Cash", AccountType: domain.Asset, ParentAccountID: "acc-1", IsActive: true},
		}, nil).Once()

	svc := services.NewCoaRegistryService(mockRepo)
	chart, err := svc.LoadChart(context.Background(), "tenant-1", "company-1")

	require.NoError(t, err)
	assert.Equal(t, 2, chart.Size())

	account, ok := chart.Resolve("acc-2")
	require.True(t, ok)
	assert.Equal(t, "1100", account.Code)
	assert.Len(t, chart.ChildrenOf("acc-1"), 1)
	mockRepo.AssertExpectations(t)
}

func TestLoadChart_RepositoryError(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockRepo.On("ListAccountsByCompany", mock.Anything, "tenant-1", "company-1").
		Return(nil, assert.AnError).Once()

	svc := services.NewCoaRegistryService(mockRepo)
	chart, err := svc.LoadChart(context.Background(), "tenant-1", "company-1")

	require.Error(t, err)
	assert.Nil(t, chart)
	assert.ErrorIs(t, err, assert.AnError)
}
