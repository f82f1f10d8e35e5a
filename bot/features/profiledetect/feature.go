package profiledetect

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lender/bot/common"
	"lender/service"
)

// Feature watches guild messages for profile embeds from the profile
// bot and assigns credit limits on first sight of a user's level.
type Feature struct {
	creditService service.CreditService
	configService service.GuildConfigService
	profileBotID  string

	remove func()
}

// New creates a new profile detection feature instance
func New(creditService service.CreditService, configService service.GuildConfigService, profileBotID string) *Feature {
	return &Feature{
		creditService: creditService,
		configService: configService,
		profileBotID:  profileBotID,
	}
}

// Attach registers the message listener on the session. Calling Attach
// twice replaces the previous registration.
func (f *Feature) Attach(s *discordgo.Session) {
	f.Detach()
	f.remove = s.AddHandler(f.handleMessage)
}

// Detach removes the message listener. Safe to call when not attached.
func (f *Feature) Detach() {
	if f.remove != nil {
		f.remove()
		f.remove = nil
	}
}

func (f *Feature) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	signal, ok := Extract(m.Message, f.profileBotID)
	if !ok {
		return
	}

	ctx := context.Background()

	// When a credit check channel is configured, only watch there.
	config, err := f.configService.Get(ctx, m.GuildID)
	if err != nil {
		log.WithFields(log.Fields{
			"guild_id": m.GuildID,
			"error":    err,
		}).Error("Failed to load guild config for profile detection")
		return
	}
	if config.CreditCheckChannelID != "" && config.CreditCheckChannelID != m.ChannelID {
		return
	}

	profile, created, err := f.creditService.AssignIfAbsent(ctx, signal.UserID, signal.Level)
	if err != nil {
		log.WithFields(log.Fields{
			"user_id": signal.UserID,
			"level":   signal.Level,
			"error":   err,
		}).Error("Failed to assign credit limit")
		return
	}
	if !created {
		return
	}

	embed := &discordgo.MessageEmbed{
		Color: 0x00FF00,
		Title: "Credit Limit Generated",
		Description: fmt.Sprintf("A credit limit of **%s coins** has been generated based on your level **%d**.",
			common.FormatCoins(profile.TotalLimit), signal.Level),
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Loan System",
			IconURL: common.GuildIconURL(s, m.GuildID),
		},
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithFields(log.Fields{
			"user_id": signal.UserID,
			"error":   err,
		}).Error("Failed to announce credit limit")
	}
}
