package service

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// AmortizedPayment computes the fixed installment for a loan of the
// given principal at an annual percentage rate over durationMonths:
//
//	i = rate / 1200
//	EMI = P * i * (1+i)^n / ((1+i)^n - 1)
//
// rounded to 2 decimal places. A zero rate is a removable singularity of
// the formula and falls back to straight-line principal / months.
func AmortizedPayment(principal int64, annualRatePercent decimal.Decimal, durationMonths int) decimal.Decimal {
	p := decimal.NewFromInt(principal)
	n := decimal.NewFromInt(int64(durationMonths))

	if annualRatePercent.IsZero() {
		return p.Div(n).Round(2)
	}

	i := annualRatePercent.Div(decimal.NewFromInt(1200))
	compounded := one.Add(i).Pow(n)
	return p.Mul(i).Mul(compounded).Div(compounded.Sub(one)).Round(2)
}
