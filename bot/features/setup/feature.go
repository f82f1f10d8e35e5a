package setup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lender/bot/common"
	"lender/models"
	"lender/service"
)

// maxAnswers bounds how many messages a wizard run will consume before
// giving up. Four valid answers finish the wizard; the headroom covers
// typos.
const maxAnswers = 8

// Feature runs the /loan setup wizard, collecting the guild
// configuration through a timed question and answer exchange in the
// invoking channel.
type Feature struct {
	configService service.GuildConfigService
	timeout       time.Duration

	mu     sync.Mutex
	active map[string]bool
}

// New creates a new setup feature instance
func New(configService service.GuildConfigService, timeout time.Duration) *Feature {
	return &Feature{
		configService: configService,
		timeout:       timeout,
		active:        make(map[string]bool),
	}
}

// HandleCommand starts the setup wizard for the invoking guild
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := common.InteractionUser(i)
	if user == nil {
		common.RespondWithError(s, i, "Unable to identify user")
		return
	}

	if i.GuildID == "" {
		common.RespondWithError(s, i, "Setup can only be run inside a server")
		return
	}

	if !common.IsUserAdmin(s, i.GuildID, user.ID) && !common.IsGuildOwner(s, i.GuildID, user.ID) {
		embed := &discordgo.MessageEmbed{
			Color:       0xFF0000,
			Title:       "Insufficient Permissions",
			Description: "You need to be an admin or the server owner to set up the loan system.",
			Footer:      footer(s, i.GuildID),
		}
		if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
			log.WithField("error", err).Error("Failed to send permission error response")
		}
		return
	}

	if !f.claim(i.GuildID) {
		common.RespondWithError(s, i, "A setup wizard is already running in this server")
		return
	}

	wizard := newSession(i.GuildID, user.ID)

	if err := common.RespondWithContent(s, i, wizard.prompt(), false); err != nil {
		log.WithFields(log.Fields{
			"guild_id": i.GuildID,
			"error":    err,
		}).Error("Failed to start setup wizard")
		f.release(i.GuildID)
		return
	}

	answers := make(chan string, maxAnswers)
	remove := s.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.GuildID != wizard.guildID || m.ChannelID != i.ChannelID {
			return
		}
		if m.Author == nil || m.Author.ID != wizard.userID {
			return
		}
		select {
		case answers <- m.Content:
		default:
		}
	})

	go f.run(s, i.ChannelID, wizard, answers, remove)
}

func (f *Feature) run(s *discordgo.Session, channelID string, wizard *session, answers <-chan string, remove func()) {
	defer remove()
	defer f.release(wizard.guildID)

	deadline := time.After(f.timeout)

	for taken := 0; taken < maxAnswers; taken++ {
		select {
		case content := <-answers:
			reply, finished := wizard.advance(content)
			if finished {
				f.finish(s, channelID, wizard)
				return
			}
			if _, err := s.ChannelMessageSend(channelID, reply); err != nil {
				log.WithFields(log.Fields{
					"guild_id": wizard.guildID,
					"error":    err,
				}).Error("Failed to send wizard prompt")
			}

		case <-deadline:
			f.abort(s, channelID, wizard)
			return
		}
	}

	// Quota exhaustion ends the wizard the same way the deadline does.
	f.abort(s, channelID, wizard)
}

func (f *Feature) finish(s *discordgo.Session, channelID string, wizard *session) {
	config := wizard.config
	if err := f.configService.Put(context.Background(), wizard.guildID, &config); err != nil {
		log.WithFields(log.Fields{
			"guild_id": wizard.guildID,
			"error":    err,
		}).Error("Failed to save guild configuration")
		if _, sendErr := s.ChannelMessageSend(channelID, "Failed to save the configuration. Please run `/loan setup` again."); sendErr != nil {
			log.WithField("error", sendErr).Error("Failed to send setup failure message")
		}
		return
	}

	log.WithFields(log.Fields{
		"guild_id": wizard.guildID,
		"user_id":  wizard.userID,
	}).Info("Loan system setup completed")

	embed := completedEmbed(s, wizard.guildID, &config)
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.WithFields(log.Fields{
			"guild_id": wizard.guildID,
			"error":    err,
		}).Error("Failed to send setup completion embed")
	}
}

func (f *Feature) abort(s *discordgo.Session, channelID string, wizard *session) {
	log.WithFields(log.Fields{
		"guild_id": wizard.guildID,
		"user_id":  wizard.userID,
	}).Info("Loan system setup aborted")

	if _, err := s.ChannelMessageSendEmbed(channelID, timedOutEmbed(s, wizard.guildID)); err != nil {
		log.WithFields(log.Fields{
			"guild_id": wizard.guildID,
			"error":    err,
		}).Error("Failed to send wizard abort message")
	}
}

func timedOutEmbed(s *discordgo.Session, guildID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0xFF0000,
		Title:       "Setup Timed Out",
		Description: "Setup timed out. Please try again.",
		Footer:      footer(s, guildID),
	}
}

func completedEmbed(s *discordgo.Session, guildID string, config *models.GuildConfig) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0x00FF00,
		Title:       "Loan System Setup Completed",
		Description: "The loan system is now ready to use with the following configuration:",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Interest Rate", Value: fmt.Sprintf("%s%%", config.InterestRate.String()), Inline: true},
			{Name: "Payout Channel", Value: fmt.Sprintf("<#%s>", config.PayoutChannelID), Inline: true},
			{Name: "Paying Channel", Value: fmt.Sprintf("<#%s>", config.PayingChannelID), Inline: true},
			{Name: "Credit Check Channel", Value: fmt.Sprintf("<#%s>", config.CreditCheckChannelID), Inline: true},
		},
		Footer: footer(s, guildID),
	}
}

func footer(s *discordgo.Session, guildID string) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text:    "Loan System",
		IconURL: common.GuildIconURL(s, guildID),
	}
}

func (f *Feature) claim(guildID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active[guildID] {
		return false
	}
	f.active[guildID] = true
	return true
}

func (f *Feature) release(guildID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active, guildID)
}
