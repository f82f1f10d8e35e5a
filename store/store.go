package store

import (
	"context"
	"fmt"
)

// Store IDs for the documents the bot persists.
const (
	CreditLimitsStoreID = "credit_limits"
	LoansStoreID        = "loans"
	GuildConfigStoreID  = "config"
	PendingLoansStoreID = "pending_loans"
)

// Store persists whole keyed JSON documents, one per store ID. Load on a
// missing store creates and persists an empty document before returning
// it, so callers never observe "not found". There is no locking and no
// cross-document transaction: callers must treat load-mutate-save as the
// unit of work and serialise it per affected key (see KeyLocks).
type Store interface {
	// Load unmarshals the document identified by storeID into out.
	Load(ctx context.Context, storeID string, out any) error

	// Save marshals doc and replaces the document identified by storeID.
	Save(ctx context.Context, storeID string, doc any) error
}

// CorruptStoreError reports stored content that could not be decoded.
type CorruptStoreError struct {
	StoreID string
	Err     error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("store %q holds corrupt content: %v", e.StoreID, e.Err)
}

func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}
