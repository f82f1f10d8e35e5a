package creditlimit

import (
	"github.com/bwmarrin/discordgo"

	"lender/service"
)

// Feature handles the /creditlimit command
type Feature struct {
	creditService service.CreditService
}

// New creates a new credit limit feature instance
func New(creditService service.CreditService) *Feature {
	return &Feature{
		creditService: creditService,
	}
}

// HandleCommand routes the creditlimit command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleOverview(s, i)
}
