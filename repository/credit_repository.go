package repository

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"lender/models"
	"lender/store"
)

// creditRepository persists the userID -> CreditProfile document.
type creditRepository struct {
	store store.Store
}

// NewCreditRepository creates a credit profile repository backed by the
// given document store.
func NewCreditRepository(s store.Store) *creditRepository {
	return &creditRepository{store: s}
}

// Load reads all credit profiles. Legacy entries holding a bare integer
// (an early data format meaning totalLimit with no usage tracked) are
// upgraded to the structured form and persisted back immediately.
func (r *creditRepository) Load(ctx context.Context) (map[string]*models.CreditProfile, error) {
	raw := make(map[string]json.RawMessage)
	if err := r.store.Load(ctx, store.CreditLimitsStoreID, &raw); err != nil {
		return nil, err
	}

	profiles := make(map[string]*models.CreditProfile, len(raw))
	upgraded := false
	for userID, value := range raw {
		var legacy int64
		if err := json.Unmarshal(value, &legacy); err == nil {
			profiles[userID] = &models.CreditProfile{TotalLimit: legacy, UsedLimit: 0}
			upgraded = true
			continue
		}

		var profile models.CreditProfile
		if err := json.Unmarshal(value, &profile); err != nil {
			return nil, &store.CorruptStoreError{StoreID: store.CreditLimitsStoreID, Err: err}
		}
		profiles[userID] = &profile
	}

	if upgraded {
		log.WithField("store", store.CreditLimitsStoreID).Info("Upgraded legacy credit limit entries")
		if err := r.Save(ctx, profiles); err != nil {
			return nil, err
		}
	}

	return profiles, nil
}

// Save replaces the credit profile document.
func (r *creditRepository) Save(ctx context.Context, profiles map[string]*models.CreditProfile) error {
	return r.store.Save(ctx, store.CreditLimitsStoreID, profiles)
}
