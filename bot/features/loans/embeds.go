package loans

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"lender/bot/common"
	"lender/models"
	"lender/service"
)

const footerText = "Loan System"

func footer(s *discordgo.Session, guildID string) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text:    footerText,
		IconURL: common.GuildIconURL(s, guildID),
	}
}

func notConfiguredEmbed(s *discordgo.Session, guildID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0xFF0000,
		Title:       "Loan System Not Set Up",
		Description: "The loan system has not been set up yet. Please ask an admin to use `/loan setup` to configure the system.",
		Footer:      footer(s, guildID),
	}
}

func outstandingLoanEmbed(s *discordgo.Session, guildID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0xFF0000,
		Title:       "Outstanding Loan Detected",
		Description: "You already have an outstanding loan. Please repay it before requesting a new one.",
		Footer:      footer(s, guildID),
	}
}

func noCreditLimitEmbed(s *discordgo.Session, guildID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0xFF0000,
		Title:       "No Credit Limit Found",
		Description: "You do not have a credit limit assigned yet. Please run a Dank Memer profile command to generate one.",
		Footer:      footer(s, guildID),
	}
}

func limitExceededEmbed(s *discordgo.Session, guildID string, requested, remaining int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: 0xFF0000,
		Title: "Loan Request Exceeds Credit Limit",
		Description: fmt.Sprintf(
			"Your requested loan amount of %s coins exceeds your remaining credit limit of %s coins. Please request a smaller amount.",
			common.FormatCoins(requested), common.FormatCoins(remaining)),
		Footer: footer(s, guildID),
	}
}

func loanApprovedEmbed(s *discordgo.Session, guildID string, loan *models.LoanRecord) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0x00FF00,
		Title:       "Loan Approved",
		Description: "Your loan has been approved with the following details:",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Loan Amount", Value: fmt.Sprintf("%s coins", common.FormatCoins(loan.Principal)), Inline: true},
			{Name: "EMI", Value: fmt.Sprintf("%s coins per %s", loan.EMI.StringFixed(2), loan.RepaymentPlan), Inline: true},
			{Name: "Duration", Value: fmt.Sprintf("%d months", loan.DurationMonths), Inline: true},
		},
		Footer: footer(s, guildID),
	}
}

func noLoanEmbed(s *discordgo.Session, guildID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0xFF0000,
		Title:       "No Outstanding Loan",
		Description: "You do not have any outstanding loans.",
		Footer:      footer(s, guildID),
	}
}

func loanRepaidEmbed(s *discordgo.Session, guildID string, result *service.RepaymentResult) *discordgo.MessageEmbed {
	if result.Closed {
		return &discordgo.MessageEmbed{
			Color:       0x00FF00,
			Title:       "Loan Fully Repaid",
			Description: "You have fully repaid your loan.",
			Footer:      footer(s, guildID),
		}
	}
	return &discordgo.MessageEmbed{
		Color: 0x00FF00,
		Title: "Loan Repayment Successful",
		Description: fmt.Sprintf("You have repaid %s coins. Remaining loan amount: %s coins.",
			common.FormatCoins(result.Applied), common.FormatCoins(result.Remaining)),
		Footer: footer(s, guildID),
	}
}

func loanStatusEmbed(s *discordgo.Session, guildID string, loan *models.LoanRecord) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0x0099FF,
		Title:       "Loan Status",
		Description: "Here is the status of your current loan:",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Loan Amount", Value: fmt.Sprintf("%s coins", common.FormatCoins(loan.Principal)), Inline: true},
			{Name: "EMI", Value: fmt.Sprintf("%s coins per %s", loan.EMI.StringFixed(2), loan.RepaymentPlan), Inline: true},
			{Name: "Remaining Duration", Value: fmt.Sprintf("%d months", loan.DurationMonths), Inline: true},
			{Name: "Due Date", Value: common.FormatDiscordTimestamp(loan.DueDate, "D"), Inline: true},
		},
		Footer: footer(s, guildID),
	}
}

func channelMention(channelID string) string {
	if channelID == "" {
		return "not set"
	}
	return fmt.Sprintf("<#%s>", channelID)
}

func configUpdatedEmbed(s *discordgo.Session, guildID string, config *models.GuildConfig) *discordgo.MessageEmbed {
	rate := "not set"
	if config.InterestRate != nil {
		rate = fmt.Sprintf("%s%%", config.InterestRate.String())
	}
	return &discordgo.MessageEmbed{
		Color:       0x00FF00,
		Title:       "Loan Configuration Updated",
		Description: "The loan system configuration has been updated with the following values:",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Interest Rate", Value: rate, Inline: true},
			{Name: "Payout Channel", Value: channelMention(config.PayoutChannelID), Inline: true},
			{Name: "Paying Channel", Value: channelMention(config.PayingChannelID), Inline: true},
			{Name: "Credit Check Channel", Value: channelMention(config.CreditCheckChannelID), Inline: true},
		},
		Footer: footer(s, guildID),
	}
}
