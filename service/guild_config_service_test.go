package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lender/events"
	"lender/models"
	"lender/store"
)

func TestGuildConfigService_Get_UnknownGuild(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockGuildConfigRepository)
	service := NewGuildConfigService(mockRepo, store.NewKeyLocks(), &recordingPublisher{})

	mockRepo.On("Load", ctx).Return(map[string]*models.GuildConfig{}, nil)

	config, err := service.Get(ctx, "guild-1")

	assert.NoError(t, err)
	assert.NotNil(t, config)
	assert.False(t, config.IsConfigured())
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGuildConfigService_Put(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockGuildConfigRepository)
	publisher := &recordingPublisher{}
	service := NewGuildConfigService(mockRepo, store.NewKeyLocks(), publisher)

	configs := map[string]*models.GuildConfig{}
	mockRepo.On("Load", ctx).Return(configs, nil)
	mockRepo.On("Save", ctx, configs).Return(nil)

	rate := decimal.NewFromInt(5)
	config := &models.GuildConfig{
		InterestRate:    &rate,
		PayoutChannelID: "chan-a",
		PayingChannelID: "chan-b",
	}
	err := service.Put(ctx, "guild-1", config)

	assert.NoError(t, err)
	assert.Same(t, config, configs["guild-1"])

	emitted := publisher.Events()
	assert.Len(t, emitted, 1)
	event, ok := emitted[0].(events.GuildConfiguredEvent)
	assert.True(t, ok)
	assert.Equal(t, "guild-1", event.GuildID)

	mockRepo.AssertExpectations(t)
}
