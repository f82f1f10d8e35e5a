package models

// CreditProfile tracks a user's credit ceiling and how much of it is
// currently reserved by an outstanding loan.
type CreditProfile struct {
	TotalLimit int64 `json:"totalLimit"`
	UsedLimit  int64 `json:"usedLimit"`
}

// Remaining returns the credit still available to the user.
func (p *CreditProfile) Remaining() int64 {
	return p.TotalLimit - p.UsedLimit
}

// UsagePercent returns the used share of the total limit, floored to a
// whole percent. Zero when no limit is assigned.
func (p *CreditProfile) UsagePercent() int {
	if p.TotalLimit <= 0 {
		return 0
	}
	return int(p.UsedLimit * 100 / p.TotalLimit)
}
