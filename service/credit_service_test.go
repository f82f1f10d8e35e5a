package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lender/events"
	"lender/models"
	"lender/store"
)

func TestDeriveLimit(t *testing.T) {
	tests := []struct {
		level    int
		expected int64
	}{
		{level: 0, expected: 1000},
		{level: 1, expected: 1000},
		{level: 5, expected: 1000},
		{level: 6, expected: 5000},
		{level: 10, expected: 5000},
		{level: 11, expected: 10000},
		{level: 20, expected: 10000},
		{level: 21, expected: 50000},
		{level: 99, expected: 50000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DeriveLimit(tt.level), "level %d", tt.level)
	}
}

func TestDeriveLimit_Monotonic(t *testing.T) {
	for level := 1; level <= 50; level++ {
		assert.LessOrEqual(t, DeriveLimit(level-1), DeriveLimit(level),
			"limit must not shrink from level %d to %d", level-1, level)
	}
}

func TestCreditService_AssignIfAbsent_NewUser(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCreditRepository)
	publisher := &recordingPublisher{}
	service := NewCreditService(mockRepo, store.NewKeyLocks(), publisher)

	profiles := map[string]*models.CreditProfile{}
	mockRepo.On("Load", ctx).Return(profiles, nil)
	mockRepo.On("Save", ctx, profiles).Return(nil)

	profile, created, err := service.AssignIfAbsent(ctx, "user-1", 15)

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(10000), profile.TotalLimit)
	assert.Equal(t, int64(0), profile.UsedLimit)

	emitted := publisher.Events()
	assert.Len(t, emitted, 1)
	event, ok := emitted[0].(events.CreditLimitAssignedEvent)
	assert.True(t, ok)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, int64(10000), event.Limit)

	mockRepo.AssertExpectations(t)
}

func TestCreditService_AssignIfAbsent_ExistingUser(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCreditRepository)
	publisher := &recordingPublisher{}
	service := NewCreditService(mockRepo, store.NewKeyLocks(), publisher)

	existing := &models.CreditProfile{TotalLimit: 1000, UsedLimit: 200}
	mockRepo.On("Load", ctx).Return(map[string]*models.CreditProfile{"user-1": existing}, nil)

	// A higher level later must not change an assigned limit
	profile, created, err := service.AssignIfAbsent(ctx, "user-1", 30)

	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, profile)
	assert.Empty(t, publisher.Events())

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreditService_Profile_NotFound(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCreditRepository)
	service := NewCreditService(mockRepo, store.NewKeyLocks(), &recordingPublisher{})

	mockRepo.On("Load", ctx).Return(map[string]*models.CreditProfile{}, nil)

	_, err := service.Profile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestCreditService_Reserve_ExceedsRemaining(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCreditRepository)
	service := NewCreditService(mockRepo, store.NewKeyLocks(), &recordingPublisher{})

	profile := &models.CreditProfile{TotalLimit: 1000, UsedLimit: 400}
	mockRepo.On("Load", ctx).Return(map[string]*models.CreditProfile{"user-1": profile}, nil)

	err := service.Reserve(ctx, "user-1", 700)

	var limitErr *LimitExceededError
	assert.ErrorAs(t, err, &limitErr)
	assert.Equal(t, int64(700), limitErr.Requested)
	assert.Equal(t, int64(600), limitErr.Remaining)
	assert.Equal(t, int64(400), profile.UsedLimit, "failed reservation must not change usage")
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreditService_Release_FloorsAtZero(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCreditRepository)
	service := NewCreditService(mockRepo, store.NewKeyLocks(), &recordingPublisher{})

	profile := &models.CreditProfile{TotalLimit: 1000, UsedLimit: 300}
	profiles := map[string]*models.CreditProfile{"user-1": profile}
	mockRepo.On("Load", ctx).Return(profiles, nil)
	mockRepo.On("Save", ctx, profiles).Return(nil)

	err := service.Release(ctx, "user-1", 500)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), profile.UsedLimit)
	mockRepo.AssertExpectations(t)
}

func TestCreditService_UsageInvariant(t *testing.T) {
	// Random reserve/release sequences must keep 0 <= used <= total.
	ctx := context.Background()

	mockRepo := new(MockCreditRepository)
	service := NewCreditService(mockRepo, store.NewKeyLocks(), &recordingPublisher{})

	profile := &models.CreditProfile{TotalLimit: 10000, UsedLimit: 0}
	profiles := map[string]*models.CreditProfile{"user-1": profile}
	mockRepo.On("Load", ctx).Return(profiles, nil)
	mockRepo.On("Save", ctx, profiles).Return(nil)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		amount := rng.Int63n(6000) + 1
		if rng.Intn(2) == 0 {
			err := service.Reserve(ctx, "user-1", amount)
			if err != nil {
				var limitErr *LimitExceededError
				assert.True(t, errors.As(err, &limitErr))
			}
		} else {
			assert.NoError(t, service.Release(ctx, "user-1", amount))
		}

		assert.GreaterOrEqual(t, profile.UsedLimit, int64(0))
		assert.LessOrEqual(t, profile.UsedLimit, profile.TotalLimit)
	}
}
