package presentation

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/wikibot/internal/core"
	"github.com/sglre6355/wikibot/internal/modules/wiki/application"
	"github.com/sglre6355/wikibot/internal/modules/wiki/domain"
)

// CancelledMessage replaces a prompt that was cancelled.
const CancelledMessage = "Cancelled."

var confirmOrCancel = []string{core.EmojiConfirm, core.EmojiCancel}

func promptEmbed(title, description, hint string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       core.ColorWarning,
		Footer:      &discordgo.MessageEmbedFooter{Text: hint},
	}
}

// finish replaces the prompt r reacted to with content.
func finish(chat core.Chat, r *core.Reaction, content string) error {
	return chat.EditMessage(r.ChannelID, r.MessageID, content, nil)
}

func cancelled[P any](chat core.Chat) core.OutcomeHandler[P] {
	return func(ctx context.Context, _ P, r *core.Reaction) error {
		return finish(chat, r, CancelledMessage)
	}
}

// requirePage replies and returns false unless title exists.
func requirePage(ctx context.Context, service *application.Service, inv *core.Invocation, title string) (bool, error) {
	exists, err := service.PageExists(ctx, title)
	if err != nil {
		_, err := inv.Reply(core.FailureMessage("checking the page", err))
		return false, err
	}
	if !exists {
		_, err := inv.Reply(missingPage(title))
		return false, err
	}
	return true, nil
}

// MoveHandler handles the move command.
type MoveHandler struct {
	service       *application.Service
	chat          core.Chat
	confirmations *core.Confirmations[domain.MoveProposal]
}

// NewMoveHandler creates a new MoveHandler.
func NewMoveHandler(service *application.Service, chat core.Chat, opts ...core.ConfirmationOption) *MoveHandler {
	h := &MoveHandler{service: service, chat: chat}
	h.confirmations = core.MustConfirmations(chat, confirmOrCancel, map[string]core.OutcomeHandler[domain.MoveProposal]{
		core.EmojiConfirm: h.confirm,
		core.EmojiCancel:  cancelled[domain.MoveProposal](chat),
	}, opts...)
	return h
}

// Confirmations returns the pending moves.
func (h *MoveHandler) Confirmations() *core.Confirmations[domain.MoveProposal] {
	return h.confirmations
}

// Handle proposes moving the first argument to the second.
func (h *MoveHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	if inv.Args.Len() < 2 || inv.Args.Len() > 3 {
		return core.ErrUsage
	}

	p := domain.MoveProposal{
		From:          domain.NormalizeTitle(inv.Args.Get(0)),
		To:            domain.NormalizeTitle(inv.Args.Get(1)),
		LeaveRedirect: true,
		Requester:     inv.Message.AuthorName,
	}
	if inv.Args.Len() == 3 {
		if !strings.EqualFold(inv.Args.Get(2), "noredirect") {
			return core.ErrUsage
		}
		p.LeaveRedirect = false
	}

	if ok, err := requirePage(ctx, h.service, inv, p.From); !ok {
		return err
	}

	_, err := h.confirmations.Prompt(inv.Message.ChannelID, inv.Message.AuthorID,
		promptEmbed("Move page", p.Describe(), "React with ✅ to move or ❌ to cancel."), p)
	return err
}

func (h *MoveHandler) confirm(ctx context.Context, p domain.MoveProposal, r *core.Reaction) error {
	result, err := h.service.Move(ctx, p)
	if err != nil {
		return finish(h.chat, r, core.FailureMessage("moving the page", err))
	}

	msg := fmt.Sprintf("Moved `%s` to `%s`: <%s>", result.From, result.To, h.service.PageURL(result.To))
	if !result.RedirectCreated {
		msg += "\nNo redirect was left behind."
	}
	return finish(h.chat, r, msg)
}

// DeleteHandler handles the delete command.
type DeleteHandler struct {
	service       *application.Service
	chat          core.Chat
	confirmations *core.Confirmations[domain.DeleteProposal]
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(service *application.Service, chat core.Chat, opts ...core.ConfirmationOption) *DeleteHandler {
	h := &DeleteHandler{service: service, chat: chat}
	h.confirmations = core.MustConfirmations(chat,
		[]string{core.EmojiCancel, core.EmojiDelete},
		map[string]core.OutcomeHandler[domain.DeleteProposal]{
			core.EmojiCancel: cancelled[domain.DeleteProposal](chat),
			core.EmojiDelete: h.confirm,
		}, opts...)
	return h
}

// Confirmations returns the pending deletions.
func (h *DeleteHandler) Confirmations() *core.Confirmations[domain.DeleteProposal] {
	return h.confirmations
}

// Handle proposes deleting the page named by the first argument. The rest
// of the arguments form the reason.
func (h *DeleteHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	title := domain.NormalizeTitle(inv.Args.Get(0))
	if title == "" {
		return core.ErrUsage
	}

	p := domain.DeleteProposal{
		Title:     title,
		Reason:    inv.Args.Join(1),
		Requester: inv.Message.AuthorName,
	}

	if ok, err := requirePage(ctx, h.service, inv, p.Title); !ok {
		return err
	}

	_, err := h.confirmations.Prompt(inv.Message.ChannelID, inv.Message.AuthorID,
		promptEmbed("Delete page", p.Describe(), "React with 🗑️ to delete or ❌ to cancel."), p)
	return err
}

func (h *DeleteHandler) confirm(ctx context.Context, p domain.DeleteProposal, r *core.Reaction) error {
	result, err := h.service.Delete(ctx, p)
	if err != nil {
		return finish(h.chat, r, core.FailureMessage("deleting the page", err))
	}
	return finish(h.chat, r, fmt.Sprintf("Deleted `%s`.", result.Title))
}

// UploadHandler handles the upload command.
type UploadHandler struct {
	service       *application.Service
	chat          core.Chat
	confirmations *core.Confirmations[domain.UploadProposal]
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *application.Service, chat core.Chat, opts ...core.ConfirmationOption) *UploadHandler {
	h := &UploadHandler{service: service, chat: chat}
	h.confirmations = core.MustConfirmations(chat, confirmOrCancel, map[string]core.OutcomeHandler[domain.UploadProposal]{
		core.EmojiConfirm: h.confirm,
		core.EmojiCancel:  cancelled[domain.UploadProposal](chat),
	}, opts...)
	return h
}

// Confirmations returns the pending uploads.
func (h *UploadHandler) Confirmations() *core.Confirmations[domain.UploadProposal] {
	return h.confirmations
}

// Handle proposes uploading the file at the first argument under the name
// given by the second.
func (h *UploadHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	if inv.Args.Len() < 2 {
		return core.ErrUsage
	}

	raw := inv.Args.Get(0)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		_, err := inv.Reply(fmt.Sprintf("`%s` is not a valid URL.", raw))
		return err
	}

	filename := inv.Args.Get(1)
	if len(filename) > len("File:") && strings.EqualFold(filename[:len("File:")], "File:") {
		filename = filename[len("File:"):]
	}

	p := domain.UploadProposal{
		URL:       u.String(),
		Filename:  domain.NormalizeTitle(filename),
		Comment:   inv.Args.Join(2),
		Requester: inv.Message.AuthorName,
	}

	_, err = h.confirmations.Prompt(inv.Message.ChannelID, inv.Message.AuthorID,
		promptEmbed("Upload file", p.Describe(), "React with ✅ to upload or ❌ to cancel."), p)
	return err
}

func (h *UploadHandler) confirm(ctx context.Context, p domain.UploadProposal, r *core.Reaction) error {
	result, err := h.service.Upload(ctx, p)
	if err != nil {
		return finish(h.chat, r, core.FailureMessage("uploading the file", err))
	}

	if result.Result != "Success" {
		return finish(h.chat, r, fmt.Sprintf(
			"Upload of `File:%s` stopped with warnings: %s", result.Filename, strings.Join(result.Warnings, "; "),
		))
	}

	link := result.URL
	if link == "" {
		link = h.service.PageURL("File:" + result.Filename)
	}
	return finish(h.chat, r, fmt.Sprintf("Uploaded `File:%s`: <%s>", result.Filename, link))
}

// RedirectHandler handles the redirect command.
type RedirectHandler struct {
	service       *application.Service
	chat          core.Chat
	confirmations *core.Confirmations[domain.RedirectProposal]
}

// NewRedirectHandler creates a new RedirectHandler.
func NewRedirectHandler(service *application.Service, chat core.Chat, opts ...core.ConfirmationOption) *RedirectHandler {
	h := &RedirectHandler{service: service, chat: chat}
	h.confirmations = core.MustConfirmations(chat, confirmOrCancel, map[string]core.OutcomeHandler[domain.RedirectProposal]{
		core.EmojiConfirm: h.confirm,
		core.EmojiCancel:  cancelled[domain.RedirectProposal](chat),
	}, opts...)
	return h
}

// Confirmations returns the pending redirects.
func (h *RedirectHandler) Confirmations() *core.Confirmations[domain.RedirectProposal] {
	return h.confirmations
}

// Handle proposes turning the first argument into a redirect to the second,
// which must exist.
func (h *RedirectHandler) Handle(ctx context.Context, inv *core.Invocation) error {
	if inv.Args.Len() != 2 {
		return core.ErrUsage
	}

	p := domain.RedirectProposal{
		From:      domain.NormalizeTitle(inv.Args.Get(0)),
		To:        domain.NormalizeTitle(inv.Args.Get(1)),
		Requester: inv.Message.AuthorName,
	}
	if p.From == "" || p.To == "" {
		return core.ErrUsage
	}

	if ok, err := requirePage(ctx, h.service, inv, p.To); !ok {
		return err
	}

	_, err := h.confirmations.Prompt(inv.Message.ChannelID, inv.Message.AuthorID,
		promptEmbed("Create redirect", p.Describe(), "React with ✅ to redirect or ❌ to cancel."), p)
	return err
}

func (h *RedirectHandler) confirm(ctx context.Context, p domain.RedirectProposal, r *core.Reaction) error {
	result, err := h.service.Redirect(ctx, p)
	if err != nil {
		return finish(h.chat, r, core.FailureMessage("creating the redirect", err))
	}
	if result.NoChange {
		return finish(h.chat, r, fmt.Sprintf("`%s` already redirects to `%s`.", p.From, p.To))
	}
	return finish(h.chat, r, fmt.Sprintf("Redirected `%s` to `%s`.", p.From, p.To))
}
