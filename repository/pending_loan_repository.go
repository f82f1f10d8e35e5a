package repository

import (
	"context"

	"lender/models"
	"lender/store"
)

// pendingLoanRepository persists loan-request intent records. An entry
// exists only for the short window between a request being approved and
// both the loan and credit documents being durably written.
type pendingLoanRepository struct {
	store store.Store
}

// NewPendingLoanRepository creates a pending loan repository backed by
// the given document store.
func NewPendingLoanRepository(s store.Store) *pendingLoanRepository {
	return &pendingLoanRepository{store: s}
}

// Load reads all pending loan intents.
func (r *pendingLoanRepository) Load(ctx context.Context) (map[string]*models.PendingLoan, error) {
	pending := make(map[string]*models.PendingLoan)
	if err := r.store.Load(ctx, store.PendingLoansStoreID, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// Save replaces the pending loan document.
func (r *pendingLoanRepository) Save(ctx context.Context, pending map[string]*models.PendingLoan) error {
	return r.store.Save(ctx, store.PendingLoansStoreID, pending)
}
