package service

import (
	"context"

	"lender/events"
	"lender/models"
)

// CreditRepository defines the interface for credit profile data access
type CreditRepository interface {
	// Load reads all credit profiles, upgrading legacy entries
	Load(ctx context.Context) (map[string]*models.CreditProfile, error)

	// Save replaces the credit profile document
	Save(ctx context.Context, profiles map[string]*models.CreditProfile) error
}

// LoanRepository defines the interface for loan data access
type LoanRepository interface {
	// Load reads all outstanding loans
	Load(ctx context.Context) (map[string]*models.LoanRecord, error)

	// Save replaces the loan document
	Save(ctx context.Context, loans map[string]*models.LoanRecord) error
}

// GuildConfigRepository defines the interface for guild config data access
type GuildConfigRepository interface {
	// Load reads all guild configurations
	Load(ctx context.Context) (map[string]*models.GuildConfig, error)

	// Save replaces the guild configuration document
	Save(ctx context.Context, configs map[string]*models.GuildConfig) error
}

// PendingLoanRepository defines the interface for loan intent records
type PendingLoanRepository interface {
	// Load reads all pending loan intents
	Load(ctx context.Context) (map[string]*models.PendingLoan, error)

	// Save replaces the pending loan document
	Save(ctx context.Context, pending map[string]*models.PendingLoan) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// CreditService defines the interface for credit limit operations
type CreditService interface {
	// AssignIfAbsent derives and stores a credit limit for the user the
	// first time a level is observed. Subsequent calls are no-ops and
	// return the existing profile with created == false.
	AssignIfAbsent(ctx context.Context, userID string, level int) (profile *models.CreditProfile, created bool, err error)

	// Profile returns the user's credit profile, or ErrNoProfile
	Profile(ctx context.Context, userID string) (*models.CreditProfile, error)

	// Remaining returns totalLimit - usedLimit, or ErrNoProfile
	Remaining(ctx context.Context, userID string) (int64, error)

	// Reserve increases usedLimit by amount; fails with
	// LimitExceededError rather than break 0 <= used <= total
	Reserve(ctx context.Context, userID string, amount int64) error

	// Release decreases usedLimit by amount, flooring at zero
	Release(ctx context.Context, userID string, amount int64) error
}

// LoanService defines the interface for the loan lifecycle
type LoanService interface {
	// Request validates against remaining credit and creates the loan,
	// reserving the principal against the user's limit
	Request(ctx context.Context, guildID, userID string, amount int64, durationMonths int, plan models.RepaymentPlan) (*models.LoanRecord, error)

	// Repay applies a repayment; the loan closes when amount reaches
	// the outstanding principal
	Repay(ctx context.Context, guildID, userID string, amount int64) (*RepaymentResult, error)

	// Status returns the user's outstanding loan, or ErrNoLoan
	Status(ctx context.Context, guildID, userID string) (*models.LoanRecord, error)

	// Configure merges the provided fields into the guild config and
	// returns the merged result
	Configure(ctx context.Context, guildID string, patch models.GuildConfigPatch) (*models.GuildConfig, error)

	// RecoverPending replays loan intents left behind by a crash
	// between the loan and credit writes
	RecoverPending(ctx context.Context) error
}

// GuildConfigService defines the interface for guild configuration
type GuildConfigService interface {
	// Get returns the guild's config, or an empty config if none exists
	Get(ctx context.Context, guildID string) (*models.GuildConfig, error)

	// Put overwrites the guild's config wholesale (wizard completion)
	Put(ctx context.Context, guildID string, config *models.GuildConfig) error
}
