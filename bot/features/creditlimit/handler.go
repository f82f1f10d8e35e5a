package creditlimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lender/bot/common"
	"lender/service"
)

func (f *Feature) handleOverview(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	if user == nil {
		common.RespondWithError(s, i, "Unable to identify user")
		return
	}

	profile, err := f.creditService.Profile(ctx, user.ID)
	if errors.Is(err, service.ErrNoProfile) {
		err = common.RespondWithContent(s, i,
			"You do not have a credit limit assigned yet. Please run a Dank Memer profile command to generate one.", false)
		if err != nil {
			log.Errorf("Error responding to creditlimit command: %v", err)
		}
		return
	}
	if err != nil {
		log.Errorf("Error loading credit profile for %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to retrieve your credit limit. Please try again.")
		return
	}

	usage := profile.UsagePercent()
	embed := &discordgo.MessageEmbed{
		Color: 0x1E90FF,
		Title: "💳 **Credit Limit Overview**",
		Description: fmt.Sprintf(
			"💼 **Total Credit Limit** - %s coins\n"+
				"💸 **Used Credit** - %s coins\n"+
				"💰 **Remaining Credit** - %s coins\n"+
				"📊 **Usage** - %d%%\n%s",
			common.FormatCoins(profile.TotalLimit),
			common.FormatCoins(profile.UsedLimit),
			common.FormatCoins(profile.Remaining()),
			usage,
			common.ProgressBar(usage)),
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Loan System • Your trusted credit manager",
			IconURL: common.GuildIconURL(s, i.GuildID),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	// Deliberately public so the whole channel sees credit standing
	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to creditlimit command: %v", err)
	}
}
