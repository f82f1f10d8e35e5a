package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"lender/events"
	"lender/models"
	"lender/store"
)

// RepaymentResult describes what a repayment did to the loan.
type RepaymentResult struct {
	Applied   int64
	Remaining int64
	Closed    bool
}

// loanService implements the LoanService interface
type loanService struct {
	loanRepo    LoanRepository
	creditRepo  CreditRepository
	configRepo  GuildConfigRepository
	pendingRepo PendingLoanRepository
	locks       *store.KeyLocks
	publisher   EventPublisher
}

// NewLoanService creates a new loan service
func NewLoanService(loanRepo LoanRepository, creditRepo CreditRepository, configRepo GuildConfigRepository, pendingRepo PendingLoanRepository, locks *store.KeyLocks, publisher EventPublisher) LoanService {
	return &loanService{
		loanRepo:    loanRepo,
		creditRepo:  creditRepo,
		configRepo:  configRepo,
		pendingRepo: pendingRepo,
		locks:       locks,
		publisher:   publisher,
	}
}

// guildConfig returns the guild's config or ErrNotConfigured when the
// required settings are missing.
func (s *loanService) guildConfig(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	configs, err := s.configRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild configs: %w", err)
	}

	config, ok := configs[guildID]
	if !ok || !config.IsConfigured() {
		return nil, ErrNotConfigured
	}
	return config, nil
}

// Request validates the loan against the user's remaining credit and,
// on success, writes the loan record and the credit reservation as one
// logical unit: a pending intent carrying the final state of both
// documents is persisted first and removed once both writes land, so a
// crash in between can be replayed by RecoverPending.
func (s *loanService) Request(ctx context.Context, guildID, userID string, amount int64, durationMonths int, plan models.RepaymentPlan) (*models.LoanRecord, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("loan amount must be positive")
	}
	if durationMonths <= 0 {
		return nil, fmt.Errorf("loan duration must be positive")
	}
	if !plan.Valid() {
		return nil, fmt.Errorf("unknown repayment plan %q", plan)
	}

	config, err := s.guildConfig(ctx, guildID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	loans, err := s.loanRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load loans: %w", err)
	}
	if _, ok := loans[userID]; ok {
		return nil, ErrOutstandingLoan
	}

	profiles, err := s.creditRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load credit profiles: %w", err)
	}
	profile, ok := profiles[userID]
	if !ok {
		return nil, ErrNoProfile
	}

	if err := reserveCredit(profile, amount); err != nil {
		return nil, err
	}

	record := &models.LoanRecord{
		Principal:      amount,
		EMI:            AmortizedPayment(amount, *config.InterestRate, durationMonths),
		InterestRate:   *config.InterestRate,
		DurationMonths: durationMonths,
		RepaymentPlan:  plan,
		DueDate:        time.Now().Add(plan.FirstDueIn()),
	}
	loans[userID] = record

	// Durable intent first: holds the final state of both documents so
	// a crash between the two saves below is recoverable.
	if err := s.writePending(ctx, userID, record, profile); err != nil {
		return nil, err
	}

	if err := s.loanRepo.Save(ctx, loans); err != nil {
		return nil, fmt.Errorf("failed to save loans: %w", err)
	}
	if err := s.creditRepo.Save(ctx, profiles); err != nil {
		return nil, fmt.Errorf("failed to save credit profiles: %w", err)
	}

	if err := s.clearPending(ctx, userID); err != nil {
		// Both documents are consistent; a stale intent only costs an
		// idempotent replay on next startup.
		log.WithField("userID", userID).Warnf("Failed to clear loan intent: %v", err)
	}

	log.WithFields(log.Fields{
		"guildID":   guildID,
		"userID":    userID,
		"principal": amount,
		"emi":       record.EMI,
		"plan":      plan,
	}).Info("Loan approved")

	s.publisher.Emit(ctx, events.LoanRequestedEvent{
		GuildID:        guildID,
		UserID:         userID,
		Principal:      amount,
		EMI:            record.EMI,
		Plan:           plan,
		DurationMonths: durationMonths,
		DueDate:        record.DueDate,
	})

	return record, nil
}

// Repay applies a repayment to the user's outstanding loan. Reserved
// credit is deliberately not released here: usedLimit stays put so the
// stored ledger matches what the system has always recorded.
func (s *loanService) Repay(ctx context.Context, guildID, userID string, amount int64) (*RepaymentResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("repayment amount must be positive")
	}

	if _, err := s.guildConfig(ctx, guildID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	loans, err := s.loanRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load loans: %w", err)
	}

	loan, ok := loans[userID]
	if !ok {
		return nil, ErrNoLoan
	}

	result := &RepaymentResult{Applied: amount}
	if amount >= loan.Principal {
		delete(loans, userID)
		result.Closed = true
	} else {
		loan.Principal -= amount
		result.Remaining = loan.Principal
	}

	if err := s.loanRepo.Save(ctx, loans); err != nil {
		return nil, fmt.Errorf("failed to save loans: %w", err)
	}

	s.publisher.Emit(ctx, events.LoanRepaidEvent{
		GuildID:            guildID,
		UserID:             userID,
		Amount:             amount,
		RemainingPrincipal: result.Remaining,
		Closed:             result.Closed,
	})

	return result, nil
}

// Status returns the user's outstanding loan. Read-only, but still
// behind the setup gate like every loan subcommand.
func (s *loanService) Status(ctx context.Context, guildID, userID string) (*models.LoanRecord, error) {
	if _, err := s.guildConfig(ctx, guildID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	loans, err := s.loanRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load loans: %w", err)
	}

	loan, ok := loans[userID]
	if !ok {
		return nil, ErrNoLoan
	}
	return loan, nil
}

// Configure merges the provided fields into the guild config, leaving
// unset fields untouched, and returns the merged result.
func (s *loanService) Configure(ctx context.Context, guildID string, patch models.GuildConfigPatch) (*models.GuildConfig, error) {
	if _, err := s.guildConfig(ctx, guildID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(guildKey(guildID))
	defer unlock()

	configs, err := s.configRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild configs: %w", err)
	}

	config, ok := configs[guildID]
	if !ok {
		config = &models.GuildConfig{}
		configs[guildID] = config
	}
	patch.Apply(config)

	if err := s.configRepo.Save(ctx, configs); err != nil {
		return nil, fmt.Errorf("failed to save guild configs: %w", err)
	}

	return config, nil
}

// RecoverPending replays loan intents left behind by a crash between
// the loan and credit writes. Intents carry final document states, so
// replaying one that already landed is a no-op overwrite.
func (s *loanService) RecoverPending(ctx context.Context) error {
	pending, err := s.pendingRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending loans: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	for userID, intent := range pending {
		unlock := s.locks.Lock(userKey(userID))

		loans, err := s.loanRepo.Load(ctx)
		if err != nil {
			unlock()
			return fmt.Errorf("failed to load loans: %w", err)
		}
		loans[userID] = intent.Record
		if err := s.loanRepo.Save(ctx, loans); err != nil {
			unlock()
			return fmt.Errorf("failed to save loans: %w", err)
		}

		profiles, err := s.creditRepo.Load(ctx)
		if err != nil {
			unlock()
			return fmt.Errorf("failed to load credit profiles: %w", err)
		}
		profiles[userID] = intent.Profile
		if err := s.creditRepo.Save(ctx, profiles); err != nil {
			unlock()
			return fmt.Errorf("failed to save credit profiles: %w", err)
		}

		if err := s.clearPending(ctx, userID); err != nil {
			unlock()
			return err
		}
		unlock()

		log.WithFields(log.Fields{
			"userID":    userID,
			"createdAt": intent.CreatedAt,
		}).Warn("Replayed interrupted loan request")
	}

	return nil
}

func (s *loanService) writePending(ctx context.Context, userID string, record *models.LoanRecord, profile *models.CreditProfile) error {
	pending, err := s.pendingRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending loans: %w", err)
	}
	pending[userID] = &models.PendingLoan{
		Record:    record,
		Profile:   profile,
		CreatedAt: time.Now(),
	}
	if err := s.pendingRepo.Save(ctx, pending); err != nil {
		return fmt.Errorf("failed to save pending loans: %w", err)
	}
	return nil
}

func (s *loanService) clearPending(ctx context.Context, userID string) error {
	pending, err := s.pendingRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending loans: %w", err)
	}
	if _, ok := pending[userID]; !ok {
		return nil
	}
	delete(pending, userID)
	if err := s.pendingRepo.Save(ctx, pending); err != nil {
		return fmt.Errorf("failed to save pending loans: %w", err)
	}
	return nil
}
