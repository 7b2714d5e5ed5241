package presentation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/wikibot/internal/core"
	"github.com/sglre6355/wikibot/internal/modules/wiki/application"
	"github.com/sglre6355/wikibot/internal/modules/wiki/domain"
	"github.com/sglre6355/wikibot/internal/wiki"
)

// PageSize bounds the characters of one page of paged output.
const PageSize = 1800

// ModHandler handles the mod command.
type ModHandler struct {
	service *application.Service
}

// NewModHandler creates a new ModHandler.
func NewModHandler(service *application.Service) *ModHandler {
	return &ModHandler{service: service}
}

// Handle replies with the mod matching the arguments.
func (h *ModHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	query := inv.Args.Join(0)
	if query == "" {
		return core.ErrUsage
	}

	lookup, err := h.service.FindMod(ctx, query)
	if err != nil {
		_, err := inv.Reply(core.FailureMessage("fetching the mods list", err))
		return err
	}
	if !lookup.Found {
		reply := fmt.Sprintf("No mod found matching `%s`.", query)
		if len(lookup.Suggestions) > 0 {
			reply += " Did you mean " + strings.Join(lookup.Suggestions, ", ") + "?"
		}
		_, err := inv.Reply(reply)
		return err
	}
	mod := lookup.Mod

	_, err = inv.Chat.SendEmbed(inv.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       mod.Name,
		URL:         h.service.PageURL(mod.Page),
		Description: fmt.Sprintf("Abbreviation: `%s`", mod.Abbreviation),
		Color:       core.ColorSuccess,
	})
	return err
}

// LanguagesHandler handles the lang command.
type LanguagesHandler struct {
	service *application.Service
	pager   *core.Pager
}

// NewLanguagesHandler creates a new LanguagesHandler.
func NewLanguagesHandler(service *application.Service, pager *core.Pager) *LanguagesHandler {
	return &LanguagesHandler{service: service, pager: pager}
}

// Handle replies with the paged language list.
func (h *LanguagesHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	languages, err := h.service.Languages(ctx)
	if err != nil {
		_, err := inv.Reply(core.FailureMessage("fetching the languages", err))
		return err
	}

	lines := make([]string, 0, len(languages))
	for _, lang := range languages {
		lines = append(lines, lang.Line())
	}

	_, err = h.pager.Send(inv.Message.ChannelID, inv.Message.AuthorID, "Languages", core.Paginate(lines, PageSize))
	return err
}

// LinkHandler turns [[Title]] mentions into article URLs.
type LinkHandler struct {
	service *application.Service
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(service *application.Service) *LinkHandler {
	return &LinkHandler{service: service}
}

// Matches claims messages containing wiki links.
func (h *LinkHandler) Matches(msg *core.Message) bool {
	return len(domain.ExtractLinks(msg.Content, 1)) > 0
}

// Handle replies with the URL of every linked page, or the page named by
// the arguments when the message holds no links.
func (h *LinkHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	titles := domain.ExtractLinks(inv.Message.Content, domain.MaxLinksPerMessage)
	if len(titles) == 0 {
		if title := domain.NormalizeTitle(inv.Args.Join(0)); title != "" {
			titles = []string{title}
		}
	}
	if len(titles) == 0 {
		return core.ErrUsage
	}

	links, err := h.service.ResolveLinks(ctx, titles)
	if err != nil {
		_, err := inv.Reply(core.FailureMessage("looking up the links", err))
		return err
	}

	lines := make([]string, 0, len(links))
	for _, link := range links {
		lines = append(lines, link.Line())
	}
	_, err = inv.Reply(strings.Join(lines, "\n"))
	return err
}

// PageHandler handles the page command.
type PageHandler struct {
	service *application.Service
	pager   *core.Pager
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(service *application.Service, pager *core.Pager) *PageHandler {
	return &PageHandler{service: service, pager: pager}
}

// Handle shows the wikitext of a page in code blocks, one per pager page.
func (h *PageHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	title := domain.NormalizeTitle(inv.Args.Join(0))
	if title == "" {
		return core.ErrUsage
	}

	lines, err := h.service.PageLines(ctx, title)
	if errors.Is(err, wiki.ErrPageNotFound) {
		_, err := inv.Reply(missingPage(title))
		return err
	}
	if err != nil {
		_, err := inv.Reply(core.FailureMessage("fetching the page", err))
		return err
	}

	const fence = "```\n"
	pages := core.Paginate(lines, PageSize-2*len(fence))
	for i, page := range pages {
		pages[i] = fence + page + "\n```"
	}

	_, err = h.pager.Send(inv.Message.ChannelID, inv.Message.AuthorID, title, pages)
	return err
}

func missingPage(title string) string {
	return fmt.Sprintf("Page `%s` does not exist.", title)
}
