package service

import (
	"context"
	"fmt"

	"lender/events"
	"lender/models"
	"lender/store"
)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	configRepo GuildConfigRepository
	locks      *store.KeyLocks
	publisher  EventPublisher
}

// NewGuildConfigService creates a new guild configuration service
func NewGuildConfigService(configRepo GuildConfigRepository, locks *store.KeyLocks, publisher EventPublisher) GuildConfigService {
	return &guildConfigService{
		configRepo: configRepo,
		locks:      locks,
		publisher:  publisher,
	}
}

// Get returns the guild's config, or an empty config if none exists.
// Nothing is persisted for unknown guilds.
func (s *guildConfigService) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	configs, err := s.configRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild configs: %w", err)
	}

	if config, ok := configs[guildID]; ok {
		return config, nil
	}
	return &models.GuildConfig{}, nil
}

// Put overwrites the guild's config wholesale. Used by the setup wizard,
// which collects a complete configuration before writing anything.
func (s *guildConfigService) Put(ctx context.Context, guildID string, config *models.GuildConfig) error {
	unlock := s.locks.Lock(guildKey(guildID))
	defer unlock()

	configs, err := s.configRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load guild configs: %w", err)
	}

	configs[guildID] = config

	if err := s.configRepo.Save(ctx, configs); err != nil {
		return fmt.Errorf("failed to save guild configs: %w", err)
	}

	s.publisher.Emit(ctx, events.GuildConfiguredEvent{GuildID: guildID})

	return nil
}
