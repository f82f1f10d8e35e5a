package setup

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"lender/models"
)

type step int

const (
	stepInterestRate step = iota
	stepPayoutChannel
	stepPayingChannel
	stepCreditCheckChannel
	stepComplete
)

var channelMentionPattern = regexp.MustCompile(`^<#(\d+)>$`)

// session accumulates wizard answers for a single guild. It is not
// safe for concurrent use; the run loop owns it.
type session struct {
	guildID string
	userID  string
	step    step
	config  models.GuildConfig
}

func newSession(guildID, userID string) *session {
	return &session{
		guildID: guildID,
		userID:  userID,
		step:    stepInterestRate,
	}
}

func (w *session) complete() bool {
	return w.step == stepComplete
}

// prompt returns the question for the current step.
func (w *session) prompt() string {
	switch w.step {
	case stepInterestRate:
		return "Let's set up the loan system. Please provide the interest rate (percentage)."
	case stepPayoutChannel:
		return "Please provide the payout channel ID:"
	case stepPayingChannel:
		return "Please provide the paying channel ID:"
	case stepCreditCheckChannel:
		return "Please provide the credit check channel ID:"
	default:
		return ""
	}
}

// advance consumes one answer. It returns the message to send back and
// whether the wizard finished. Only the interest rate step validates;
// channel steps accept the answer as given, so an ID pasted from
// developer mode and a typed mention both work.
func (w *session) advance(content string) (reply string, finished bool) {
	content = strings.TrimSpace(content)

	switch w.step {
	case stepInterestRate:
		rate, err := decimal.NewFromString(content)
		if err != nil || rate.IsNegative() {
			return "Invalid interest rate. Please provide a valid number.", false
		}
		w.config.InterestRate = &rate
		w.step = stepPayoutChannel

	case stepPayoutChannel:
		w.config.PayoutChannelID = channelID(content)
		w.step = stepPayingChannel

	case stepPayingChannel:
		w.config.PayingChannelID = channelID(content)
		w.step = stepCreditCheckChannel

	case stepCreditCheckChannel:
		w.config.CreditCheckChannelID = channelID(content)
		w.step = stepComplete
		return "", true
	}

	return w.prompt(), false
}

// channelID unwraps a channel mention to its ID and passes anything
// else through verbatim.
func channelID(content string) string {
	if match := channelMentionPattern.FindStringSubmatch(content); match != nil {
		return match[1]
	}
	return content
}
