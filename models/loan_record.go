package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepaymentPlan is the cadence a borrower committed to.
type RepaymentPlan string

const (
	RepaymentPlanWeekly  RepaymentPlan = "weekly"
	RepaymentPlanMonthly RepaymentPlan = "monthly"
)

// Valid reports whether the plan is one of the supported cadences.
func (p RepaymentPlan) Valid() bool {
	return p == RepaymentPlanWeekly || p == RepaymentPlanMonthly
}

// FirstDueIn returns how far out the first installment is due.
func (p RepaymentPlan) FirstDueIn() time.Duration {
	if p == RepaymentPlanMonthly {
		return 30 * 24 * time.Hour
	}
	return 7 * 24 * time.Hour
}

// LoanRecord is a user's single outstanding loan. JSON keys match the
// stored document format.
type LoanRecord struct {
	Principal      int64           `json:"loan_amount"`
	EMI            decimal.Decimal `json:"emi"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	DurationMonths int             `json:"duration_months"`
	RepaymentPlan  RepaymentPlan   `json:"repayment_plan"`
	DueDate        time.Time       `json:"due_date"`
}
