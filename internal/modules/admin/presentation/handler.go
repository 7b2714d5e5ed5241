package presentation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/wikibot/internal/core"
	"github.com/sglre6355/wikibot/internal/modules/admin/application"
	"github.com/sglre6355/wikibot/internal/modules/admin/domain"
)

// PingHandler handles the ping command.
type PingHandler struct {
	interactor *application.PingInteractor
}

// NewPingHandler creates a new PingHandler. A nil clock uses time.Now.
func NewPingHandler(now func() time.Time) *PingHandler {
	return &PingHandler{
		interactor: application.NewPingInteractor(now),
	}
}

// Handle replies with the latency of the invoking message.
func (h *PingHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	result := h.interactor.Execute(inv.Message.ID)

	_, err := inv.Reply(result.Message)
	return err
}

// PongHandler answers messages containing the 🏓 emoji.
type PongHandler struct{}

// NewPongHandler creates a new PongHandler.
func NewPongHandler() *PongHandler {
	return &PongHandler{}
}

// Matches claims messages containing the pong trigger.
func (h *PongHandler) Matches(msg *core.Message) bool {
	return domain.IsPongTrigger(msg.Content)
}

// Handle replies with the pong message.
func (h *PongHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	_, err := inv.Reply(domain.PongReply)
	return err
}

const maxSuggestions = 3

// HelpHandler handles the help command.
type HelpHandler struct {
	interactor *application.HelpInteractor
	pager      *core.Pager
}

// NewHelpHandler creates a new HelpHandler that pages through pager.
func NewHelpHandler(pager *core.Pager) *HelpHandler {
	return &HelpHandler{
		interactor: application.NewHelpInteractor(),
		pager:      pager,
	}
}

// Handle lists the commands available to the author, or describes the one
// named by the first argument.
func (h *HelpHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	if inv.Args.Len() == 0 {
		pages := h.interactor.Pages(inv.Registry.Commands(), inv.Message.Roles, inv.Prefix)
		_, err := h.pager.Send(inv.Message.ChannelID, inv.Message.AuthorID, "Commands", pages)
		return err
	}

	name := inv.Args.Get(0)
	cmd := inv.Registry.Lookup(name)
	if cmd == nil {
		reply := fmt.Sprintf("Unknown command `%s`.", name)
		if suggestions := inv.Registry.Suggest(name, maxSuggestions); len(suggestions) > 0 {
			reply += fmt.Sprintf(" Did you mean `%s`?", strings.Join(suggestions, "`, `"))
		} else {
			reply += fmt.Sprintf(" Run `%shelp` to list commands.", inv.Prefix)
		}
		_, err := inv.Reply(reply)
		return err
	}

	summary := h.interactor.Summarize(cmd, inv.Prefix)
	core.SendEmbed(inv.Chat, inv.Message.ChannelID, inv.Prefix+cmd.Name, summary.Details(), core.ColorSuccess)
	return nil
}

// ReloadHandler rebuilds the command registry.
type ReloadHandler struct{}

// NewReloadHandler creates a new ReloadHandler.
func NewReloadHandler() *ReloadHandler {
	return &ReloadHandler{}
}

// Handle reloads the registry and reports how many commands it now holds.
func (h *ReloadHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	inv.Registry.Reload()

	count := len(inv.Registry.Commands())
	slog.Info("reloaded commands", "count", count, "user", inv.Message.AuthorID.String())

	_, err := inv.Reply(fmt.Sprintf("Reloaded %d commands.", count))
	return err
}

// ShutdownHandler stops the bot on request of its owner.
type ShutdownHandler struct {
	owner    snowflake.ID
	shutdown func()
}

// NewShutdownHandler creates a new ShutdownHandler. A zero owner disables
// the command for everyone.
func NewShutdownHandler(owner snowflake.ID, shutdown func()) *ShutdownHandler {
	return &ShutdownHandler{
		owner:    owner,
		shutdown: shutdown,
	}
}

// Handle asks the bot to shut down when the author is the owner.
func (h *ShutdownHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	if h.owner == 0 || inv.Message.AuthorID != h.owner || h.shutdown == nil {
		_, err := inv.Reply("Only the bot owner can shut it down.")
		return err
	}

	slog.Info("shutdown requested", "user", inv.Message.AuthorID.String())
	if _, err := inv.Reply("Shutting down..."); err != nil {
		slog.Error("failed to send shutdown notice", "error", err)
	}
	h.shutdown()
	return nil
}
