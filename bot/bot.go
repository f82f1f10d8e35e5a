package bot

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"lender/bot/common"
	"lender/bot/features/creditlimit"
	"lender/bot/features/loans"
	"lender/bot/features/profiledetect"
	"lender/bot/features/setup"
	"lender/events"
	"lender/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token        string
	ProfileBotID string
	SetupTimeout time.Duration
}

type Bot struct {
	config             Config
	session            *discordgo.Session
	creditService      service.CreditService
	loanService        service.LoanService
	guildConfigService service.GuildConfigService
	eventBus           *events.Bus

	creditLimitFeature   *creditlimit.Feature
	loansFeature         *loans.Feature
	setupFeature         *setup.Feature
	profileDetectFeature *profiledetect.Feature
}

func New(config Config, creditService service.CreditService, loanService service.LoanService, guildConfigService service.GuildConfigService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{
		config:             config,
		session:            dg,
		creditService:      creditService,
		loanService:        loanService,
		guildConfigService: guildConfigService,
		eventBus:           eventBus,

		creditLimitFeature:   creditlimit.New(creditService),
		loansFeature:         loans.New(loanService),
		setupFeature:         setup.New(guildConfigService, config.SetupTimeout),
		profileDetectFeature: profiledetect.New(creditService, guildConfigService, config.ProfileBotID),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Watch guild messages for profile embeds
	bot.profileDetectFeature.Attach(dg)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Announce approved loans in the configured payout channel
	eventBus.Subscribe(events.EventTypeLoanRequested, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.LoanRequestedEvent); ok {
			bot.announceLoanPayout(ctx, e)
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	b.profileDetectFeature.Detach()
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "creditlimit":
		b.creditLimitFeature.HandleCommand(s, i)
	case "loan":
		options := i.ApplicationCommandData().Options
		if len(options) > 0 && options[0].Name == "setup" {
			b.setupFeature.HandleCommand(s, i)
			return
		}
		b.loansFeature.HandleCommand(s, i)
	}
}

// announceLoanPayout posts a public notice in the guild's payout
// channel so the treasury knows to transfer the coins.
func (b *Bot) announceLoanPayout(ctx context.Context, e events.LoanRequestedEvent) {
	config, err := b.guildConfigService.Get(ctx, e.GuildID)
	if err != nil {
		log.WithFields(log.Fields{
			"guild_id": e.GuildID,
			"error":    err,
		}).Error("Failed to load guild config for payout announcement")
		return
	}
	if config.PayoutChannelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Color: 0x00FF00,
		Title: "Loan Payout Due",
		Description: fmt.Sprintf("<@%s> has been approved for a loan of %s coins. Please pay out in this channel.",
			e.UserID, common.FormatCoins(e.Principal)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "EMI", Value: fmt.Sprintf("%s coins per %s", e.EMI.StringFixed(2), e.Plan), Inline: true},
			{Name: "Duration", Value: fmt.Sprintf("%d months", e.DurationMonths), Inline: true},
			{Name: "First Due Date", Value: common.FormatDiscordTimestamp(e.DueDate, "D"), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Loan System",
			IconURL: common.GuildIconURL(b.session, e.GuildID),
		},
	}
	if _, err := b.session.ChannelMessageSendEmbed(config.PayoutChannelID, embed); err != nil {
		log.WithFields(log.Fields{
			"guild_id": e.GuildID,
			"user_id":  e.UserID,
			"error":    err,
		}).Error("Failed to announce loan payout")
	}
}
