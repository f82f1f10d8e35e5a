package loans

import (
	"github.com/bwmarrin/discordgo"

	"lender/service"
)

// Feature handles the /loan request, repay, status and config
// subcommands. The setup subcommand is routed separately to the wizard.
type Feature struct {
	loanService service.LoanService
}

// New creates a new loans feature instance
func New(loanService service.LoanService) *Feature {
	return &Feature{
		loanService: loanService,
	}
}

// HandleCommand routes loan subcommands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "request":
		f.handleRequest(s, i, options[0].Options)
	case "repay":
		f.handleRepay(s, i, options[0].Options)
	case "status":
		f.handleStatus(s, i)
	case "config":
		f.handleConfig(s, i, options[0].Options)
	}
}
