package loans

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"lender/bot/common"
	"lender/models"
	"lender/service"
)

func (f *Feature) handleRequest(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	user := common.InteractionUser(i)
	if user == nil {
		common.RespondWithError(s, i, "Unable to identify user")
		return
	}

	var amount, duration int64
	var plan string
	for _, opt := range options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "duration":
			duration = opt.IntValue()
		case "plan":
			plan = opt.StringValue()
		}
	}

	if amount <= 0 {
		common.RespondWithError(s, i, "Loan amount must be positive")
		return
	}
	if duration <= 0 {
		common.RespondWithError(s, i, "Loan duration must be positive")
		return
	}

	loan, err := f.loanService.Request(context.Background(), i.GuildID, user.ID, amount, int(duration), models.RepaymentPlan(plan))
	if err != nil {
		f.respondRequestError(s, i, err)
		return
	}

	if err := common.RespondWithEmbed(s, i, loanApprovedEmbed(s, i.GuildID, loan), true); err != nil {
		log.WithFields(log.Fields{
			"user_id": user.ID,
			"error":   err,
		}).Error("Failed to send loan approval response")
	}
}

func (f *Feature) respondRequestError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	var limitErr *service.LimitExceededError

	var embed *discordgo.MessageEmbed
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		embed = notConfiguredEmbed(s, i.GuildID)
	case errors.Is(err, service.ErrOutstandingLoan):
		embed = outstandingLoanEmbed(s, i.GuildID)
	case errors.Is(err, service.ErrNoProfile):
		embed = noCreditLimitEmbed(s, i.GuildID)
	case errors.As(err, &limitErr):
		embed = limitExceededEmbed(s, i.GuildID, limitErr.Requested, limitErr.Remaining)
	default:
		log.WithField("error", err).Error("Loan request failed")
		common.RespondWithError(s, i, "Failed to process loan request. Please try again later.")
		return
	}

	if respErr := common.RespondWithEmbed(s, i, embed, true); respErr != nil {
		log.WithField("error", respErr).Error("Failed to send loan request error response")
	}
}

func (f *Feature) handleRepay(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	user := common.InteractionUser(i)
	if user == nil {
		common.RespondWithError(s, i, "Unable to identify user")
		return
	}

	var amount int64
	for _, opt := range options {
		if opt.Name == "amount" {
			amount = opt.IntValue()
		}
	}

	if amount <= 0 {
		common.RespondWithError(s, i, "Repayment amount must be positive")
		return
	}

	result, err := f.loanService.Repay(context.Background(), i.GuildID, user.ID, amount)
	if err != nil {
		var embed *discordgo.MessageEmbed
		switch {
		case errors.Is(err, service.ErrNotConfigured):
			embed = notConfiguredEmbed(s, i.GuildID)
		case errors.Is(err, service.ErrNoLoan):
			embed = noLoanEmbed(s, i.GuildID)
		default:
			log.WithField("error", err).Error("Loan repayment failed")
			common.RespondWithError(s, i, "Failed to process repayment. Please try again later.")
			return
		}
		if respErr := common.RespondWithEmbed(s, i, embed, true); respErr != nil {
			log.WithField("error", respErr).Error("Failed to send repayment error response")
		}
		return
	}

	if err := common.RespondWithEmbed(s, i, loanRepaidEmbed(s, i.GuildID, result), true); err != nil {
		log.WithFields(log.Fields{
			"user_id": user.ID,
			"error":   err,
		}).Error("Failed to send repayment response")
	}
}

func (f *Feature) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := common.InteractionUser(i)
	if user == nil {
		common.RespondWithError(s, i, "Unable to identify user")
		return
	}

	loan, err := f.loanService.Status(context.Background(), i.GuildID, user.ID)
	if err != nil {
		var embed *discordgo.MessageEmbed
		switch {
		case errors.Is(err, service.ErrNotConfigured):
			embed = notConfiguredEmbed(s, i.GuildID)
		case errors.Is(err, service.ErrNoLoan):
			embed = noLoanEmbed(s, i.GuildID)
		default:
			log.WithField("error", err).Error("Loan status lookup failed")
			common.RespondWithError(s, i, "Failed to fetch loan status. Please try again later.")
			return
		}
		if respErr := common.RespondWithEmbed(s, i, embed, true); respErr != nil {
			log.WithField("error", respErr).Error("Failed to send loan status response")
		}
		return
	}

	if err := common.RespondWithEmbed(s, i, loanStatusEmbed(s, i.GuildID, loan), true); err != nil {
		log.WithFields(log.Fields{
			"user_id": user.ID,
			"error":   err,
		}).Error("Failed to send loan status response")
	}
}

func (f *Feature) handleConfig(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	user := common.InteractionUser(i)
	if user == nil {
		common.RespondWithError(s, i, "Unable to identify user")
		return
	}
	if !common.IsUserAdmin(s, i.GuildID, user.ID) && !common.IsGuildOwner(s, i.GuildID, user.ID) {
		common.RespondWithError(s, i, "You need administrator permissions to update the loan configuration")
		return
	}

	var patch models.GuildConfigPatch
	for _, opt := range options {
		switch opt.Name {
		case "interest_rate":
			rate := decimal.NewFromInt(opt.IntValue())
			patch.InterestRate = &rate
		case "payout_channel":
			id := opt.ChannelValue(nil).ID
			patch.PayoutChannelID = &id
		case "paying_channel":
			id := opt.ChannelValue(nil).ID
			patch.PayingChannelID = &id
		case "credit_check_channel":
			id := opt.ChannelValue(nil).ID
			patch.CreditCheckChannelID = &id
		}
	}

	config, err := f.loanService.Configure(context.Background(), i.GuildID, patch)
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			if respErr := common.RespondWithEmbed(s, i, notConfiguredEmbed(s, i.GuildID), true); respErr != nil {
				log.WithField("error", respErr).Error("Failed to send config error response")
			}
			return
		}
		log.WithField("error", err).Error("Loan configuration update failed")
		common.RespondWithError(s, i, "Failed to update configuration. Please try again later.")
		return
	}

	if err := common.RespondWithEmbed(s, i, configUpdatedEmbed(s, i.GuildID, config), true); err != nil {
		log.WithField("error", err).Error("Failed to send config update response")
	}
}
