package profiledetect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var levelDigits = regexp.MustCompile(`\d+`)

// Signal is a level observation extracted from a profile embed.
type Signal struct {
	UserID string
	Level  int
}

// Extract pulls a level signal out of a profile message posted by the
// profile bot. It returns false when the message is from another
// author, carries no embed, or has no level field.
func Extract(m *discordgo.Message, profileBotID string) (Signal, bool) {
	if m == nil || m.Author == nil || m.Author.ID != profileBotID {
		return Signal{}, false
	}
	if len(m.Embeds) == 0 {
		return Signal{}, false
	}

	embed := m.Embeds[0]
	var levelValue string
	for _, field := range embed.Fields {
		if field == nil {
			continue
		}
		if strings.Contains(field.Name, "Level") {
			levelValue = field.Value
			break
		}
	}
	if levelValue == "" {
		return Signal{}, false
	}

	digits := levelDigits.FindString(levelValue)
	if digits == "" {
		return Signal{}, false
	}
	level, err := strconv.Atoi(digits)
	if err != nil {
		return Signal{}, false
	}

	subject := subjectOf(m)
	if subject == "" {
		return Signal{}, false
	}

	return Signal{UserID: subject, Level: level}, true
}

// subjectOf resolves whose profile the embed shows: the slash command
// invoker when present, then the first mention, then the message
// author.
func subjectOf(m *discordgo.Message) string {
	if m.Interaction != nil && m.Interaction.User != nil {
		return m.Interaction.User.ID
	}
	if len(m.Mentions) > 0 && m.Mentions[0] != nil {
		return m.Mentions[0].ID
	}
	if m.Author != nil {
		return m.Author.ID
	}
	return ""
}
