package repository

import (
	"context"

	"lender/models"
	"lender/store"
)

// guildConfigRepository persists the guildID -> GuildConfig document.
type guildConfigRepository struct {
	store store.Store
}

// NewGuildConfigRepository creates a guild config repository backed by
// the given document store.
func NewGuildConfigRepository(s store.Store) *guildConfigRepository {
	return &guildConfigRepository{store: s}
}

// Load reads all guild configurations.
func (r *guildConfigRepository) Load(ctx context.Context) (map[string]*models.GuildConfig, error) {
	configs := make(map[string]*models.GuildConfig)
	if err := r.store.Load(ctx, store.GuildConfigStoreID, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// Save replaces the guild configuration document.
func (r *guildConfigRepository) Save(ctx context.Context, configs map[string]*models.GuildConfig) error {
	return r.store.Save(ctx, store.GuildConfigStoreID, configs)
}
