package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProfile means no credit limit has been assigned to the user yet
	ErrNoProfile = errors.New("no credit profile assigned")

	// ErrNotConfigured means the guild has not completed loan setup
	ErrNotConfigured = errors.New("loan system not configured for guild")

	// ErrOutstandingLoan means the user already has an active loan
	ErrOutstandingLoan = errors.New("outstanding loan exists")

	// ErrNoLoan means the user has no active loan
	ErrNoLoan = errors.New("no outstanding loan")
)

// LimitExceededError is returned when a reservation would push usedLimit
// past totalLimit.
type LimitExceededError struct {
	Requested int64
	Remaining int64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("requested %d exceeds remaining credit %d", e.Requested, e.Remaining)
}
