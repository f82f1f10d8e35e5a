package models

import "time"

// PendingLoan is a durable intent record written before a loan request
// touches the loan and credit stores. It carries the final state of both
// documents for the user, so replaying it after a crash is idempotent.
type PendingLoan struct {
	Record    *LoanRecord    `json:"record"`
	Profile   *CreditProfile `json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
}
