package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"lender/events"
	"lender/models"
	"lender/store"
)

// DeriveLimit maps an observed level to a total credit limit, highest
// tier first. Pure function.
func DeriveLimit(level int) int64 {
	switch {
	case level >= 21:
		return 50000
	case level >= 11:
		return 10000
	case level >= 6:
		return 5000
	default:
		return 1000
	}
}

// creditService implements the CreditService interface
type creditService struct {
	creditRepo CreditRepository
	locks      *store.KeyLocks
	publisher  EventPublisher
}

// NewCreditService creates a new credit limit service
func NewCreditService(creditRepo CreditRepository, locks *store.KeyLocks, publisher EventPublisher) CreditService {
	return &creditService{
		creditRepo: creditRepo,
		locks:      locks,
		publisher:  publisher,
	}
}

// AssignIfAbsent derives and stores a credit limit for the user the
// first time a level is observed. Assignment happens at most once per
// user for the lifetime of the data, regardless of later level changes.
func (s *creditService) AssignIfAbsent(ctx context.Context, userID string, level int) (*models.CreditProfile, bool, error) {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	profiles, err := s.creditRepo.Load(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load credit profiles: %w", err)
	}

	if existing, ok := profiles[userID]; ok {
		return existing, false, nil
	}

	profile := &models.CreditProfile{
		TotalLimit: DeriveLimit(level),
		UsedLimit:  0,
	}
	profiles[userID] = profile

	if err := s.creditRepo.Save(ctx, profiles); err != nil {
		return nil, false, fmt.Errorf("failed to save credit profiles: %w", err)
	}

	log.WithFields(log.Fields{
		"userID": userID,
		"level":  level,
		"limit":  profile.TotalLimit,
	}).Info("Assigned credit limit")

	s.publisher.Emit(ctx, events.CreditLimitAssignedEvent{
		UserID: userID,
		Level:  level,
		Limit:  profile.TotalLimit,
	})

	return profile, true, nil
}

// Profile returns the user's credit profile.
func (s *creditService) Profile(ctx context.Context, userID string) (*models.CreditProfile, error) {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	profiles, err := s.creditRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load credit profiles: %w", err)
	}

	profile, ok := profiles[userID]
	if !ok {
		return nil, ErrNoProfile
	}
	return profile, nil
}

// Remaining returns the credit still available to the user.
func (s *creditService) Remaining(ctx context.Context, userID string) (int64, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return profile.Remaining(), nil
}

// Reserve increases usedLimit by amount.
func (s *creditService) Reserve(ctx context.Context, userID string, amount int64) error {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	profiles, err := s.creditRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load credit profiles: %w", err)
	}

	profile, ok := profiles[userID]
	if !ok {
		return ErrNoProfile
	}

	if err := reserveCredit(profile, amount); err != nil {
		return err
	}

	return s.creditRepo.Save(ctx, profiles)
}

// Release decreases usedLimit by amount, flooring at zero.
func (s *creditService) Release(ctx context.Context, userID string, amount int64) error {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	profiles, err := s.creditRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load credit profiles: %w", err)
	}

	profile, ok := profiles[userID]
	if !ok {
		return ErrNoProfile
	}

	releaseCredit(profile, amount)

	return s.creditRepo.Save(ctx, profiles)
}

// reserveCredit applies a reservation to an already-loaded profile. The
// caller holds the user's key lock.
func reserveCredit(profile *models.CreditProfile, amount int64) error {
	if amount > profile.Remaining() {
		return &LimitExceededError{Requested: amount, Remaining: profile.Remaining()}
	}
	profile.UsedLimit += amount
	return nil
}

// releaseCredit returns reserved credit to an already-loaded profile,
// flooring usedLimit at zero. The caller holds the user's key lock.
func releaseCredit(profile *models.CreditProfile, amount int64) {
	profile.UsedLimit -= amount
	if profile.UsedLimit < 0 {
		profile.UsedLimit = 0
	}
}

// userKey scopes lock keys so user and guild IDs can never collide.
func userKey(userID string) string {
	return "user:" + userID
}

// guildKey scopes lock keys so user and guild IDs can never collide.
func guildKey(guildID string) string {
	return "guild:" + guildID
}
