package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lender/models"
)

// MockCreditRepository is a mock implementation of CreditRepository
type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) Load(ctx context.Context) (map[string]*models.CreditProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.CreditProfile), args.Error(1)
}

func (m *MockCreditRepository) Save(ctx context.Context, profiles map[string]*models.CreditProfile) error {
	args := m.Called(ctx, profiles)
	return args.Error(0)
}

// MockLoanRepository is a mock implementation of LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Load(ctx context.Context) (map[string]*models.LoanRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.LoanRecord), args.Error(1)
}

func (m *MockLoanRepository) Save(ctx context.Context, loans map[string]*models.LoanRecord) error {
	args := m.Called(ctx, loans)
	return args.Error(0)
}

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) Load(ctx context.Context) (map[string]*models.GuildConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) Save(ctx context.Context, configs map[string]*models.GuildConfig) error {
	args := m.Called(ctx, configs)
	return args.Error(0)
}

// MockPendingLoanRepository is a mock implementation of PendingLoanRepository
type MockPendingLoanRepository struct {
	mock.Mock
}

func (m *MockPendingLoanRepository) Load(ctx context.Context) (map[string]*models.PendingLoan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.PendingLoan), args.Error(1)
}

func (m *MockPendingLoanRepository) Save(ctx context.Context, pending map[string]*models.PendingLoan) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}
