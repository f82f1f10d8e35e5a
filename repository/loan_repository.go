package repository

import (
	"context"

	"lender/models"
	"lender/store"
)

// loanRepository persists the userID -> LoanRecord document.
type loanRepository struct {
	store store.Store
}

// NewLoanRepository creates a loan repository backed by the given
// document store.
func NewLoanRepository(s store.Store) *loanRepository {
	return &loanRepository{store: s}
}

// Load reads all outstanding loans.
func (r *loanRepository) Load(ctx context.Context) (map[string]*models.LoanRecord, error) {
	loans := make(map[string]*models.LoanRecord)
	if err := r.store.Load(ctx, store.LoansStoreID, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// Save replaces the loan document.
func (r *loanRepository) Save(ctx context.Context, loans map[string]*models.LoanRecord) error {
	return r.store.Save(ctx, store.LoansStoreID, loans)
}
