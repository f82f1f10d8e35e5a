package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "creditlimit",
			Description: "Check your credit limit and usage",
		},
		{
			Name:        "loan",
			Description: "Request and manage loans",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup",
					Description: "Set up the loan system for this server (admin only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "request",
					Description: "Request a loan against your credit limit",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Loan amount in coins",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "duration",
							Description: "Loan duration in months",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "plan",
							Description: "Repayment plan",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Weekly", Value: "weekly"},
								{Name: "Monthly", Value: "monthly"},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Check your outstanding loan",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "repay",
					Description: "Repay part or all of your loan",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Repayment amount in coins",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "config",
					Description: "Update loan system settings (admin only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "interest_rate",
							Description: "Annual interest rate as a percentage",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "payout_channel",
							Description: "Channel where approved loans are paid out",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "paying_channel",
							Description: "Channel where repayments are collected",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "credit_check_channel",
							Description: "Channel watched for profile embeds",
							Required:    false,
						},
					},
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
