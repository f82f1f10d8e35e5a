package models

import "github.com/shopspring/decimal"

// GuildConfig holds per-guild loan system settings. All fields are
// optional until setup completes; JSON keys match the stored document
// format.
type GuildConfig struct {
	InterestRate         *decimal.Decimal `json:"interest_rate,omitempty"`
	PayoutChannelID      string           `json:"payout_channel_id,omitempty"`
	PayingChannelID      string           `json:"paying_channel_id,omitempty"`
	CreditCheckChannelID string           `json:"credit_check_channel_id,omitempty"`
}

// IsConfigured reports whether the loan system is usable in the guild.
// The credit check channel is cosmetic and not required.
func (c *GuildConfig) IsConfigured() bool {
	return c != nil && c.InterestRate != nil && c.PayoutChannelID != "" && c.PayingChannelID != ""
}

// GuildConfigPatch carries the fields of a partial config update. Nil
// fields are left untouched by Apply.
type GuildConfigPatch struct {
	InterestRate         *decimal.Decimal
	PayoutChannelID      *string
	PayingChannelID      *string
	CreditCheckChannelID *string
}

// Apply merges the set fields of the patch into the config.
func (p GuildConfigPatch) Apply(c *GuildConfig) {
	if p.InterestRate != nil {
		c.InterestRate = p.InterestRate
	}
	if p.PayoutChannelID != nil {
		c.PayoutChannelID = *p.PayoutChannelID
	}
	if p.PayingChannelID != nil {
		c.PayingChannelID = *p.PayingChannelID
	}
	if p.CreditCheckChannelID != nil {
		c.CreditCheckChannelID = *p.CreditCheckChannelID
	}
}
