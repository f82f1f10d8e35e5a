package common

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// InteractionUser returns the invoking user for both guild and DM
// interactions.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// IsUserAdmin checks if a user has administrator permissions in a guild
func IsUserAdmin(s *discordgo.Session, guildID, userID string) bool {
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		log.Errorf("Failed to get guild member: %v", err)
		return false
	}

	// Check each role for admin permissions
	for _, roleID := range member.Roles {
		role, err := s.State.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

// IsGuildOwner checks if a user owns the guild
func IsGuildOwner(s *discordgo.Session, guildID, userID string) bool {
	guild, err := s.State.Guild(guildID)
	if err != nil || guild.OwnerID == "" {
		guild, err = s.Guild(guildID)
		if err != nil {
			log.Errorf("Failed to get guild %s: %v", guildID, err)
			return false
		}
	}
	return guild.OwnerID == userID
}

// GuildIconURL returns the guild's icon URL for embed footers, or an
// empty string outside a guild.
func GuildIconURL(s *discordgo.Session, guildID string) string {
	if guildID == "" {
		return ""
	}
	guild, err := s.State.Guild(guildID)
	if err != nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			return ""
		}
	}
	return guild.IconURL("")
}
