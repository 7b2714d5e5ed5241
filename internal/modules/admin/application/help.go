package application

import (
	"github.com/sglre6355/wikibot/internal/core"
	"github.com/sglre6355/wikibot/internal/modules/admin/domain"
)

// HelpPageSize bounds the characters shown on one help page.
const HelpPageSize = 1800

// HelpInteractor handles the help use case.
type HelpInteractor struct{}

// NewHelpInteractor creates a new HelpInteractor.
func NewHelpInteractor() *HelpInteractor {
	return &HelpInteractor{}
}

// Summarize describes cmd as seen with prefix.
func (h *HelpInteractor) Summarize(cmd *core.Command, prefix string) domain.CommandSummary {
	return domain.CommandSummary{
		Name:        cmd.Name,
		Aliases:     cmd.Aliases,
		Roles:       cmd.Roles,
		UsageLine:   cmd.UsageLine(prefix),
		Description: cmd.DescriptionFor(prefix),
	}
}

// Pages lists the commands the roles may run, split into pages.
// Commands without a prefix form, such as message predicates, are listed too.
func (h *HelpInteractor) Pages(commands []*core.Command, roles []string, prefix string) []string {
	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		if !core.HasRequiredRole(roles, cmd.Roles) {
			continue
		}
		lines = append(lines, h.Summarize(cmd, prefix).Line())
	}
	return core.Paginate(lines, HelpPageSize)
}
