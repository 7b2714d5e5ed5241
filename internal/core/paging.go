package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/wikibot/internal/metrics"
)

// Pager control emojis, in the order they are attached.
const (
	EmojiRewind      = "⏮️"
	EmojiBack        = "◀️"
	EmojiForward     = "▶️"
	EmojiFastForward = "⏭️"
)

var pagerControls = []string{EmojiRewind, EmojiBack, EmojiForward, EmojiFastForward}

// ColorPager is the embed color of paged messages.
const ColorPager = 0x3498DB

// Step returns the page index that control leads to from index, wrapping
// around at both ends. ok is false if control is not a pager emoji.
func Step(index, last int, control string) (next int, ok bool) {
	switch control {
	case EmojiRewind:
		return 0, true
	case EmojiBack:
		if index == 0 {
			return last, true
		}
		return index - 1, true
	case EmojiForward:
		if index == last {
			return 0, true
		}
		return index + 1, true
	case EmojiFastForward:
		return last, true
	default:
		return index, false
	}
}

// PageState is the paging position of one displayed message.
type PageState struct {
	Title     string
	Pages     []string
	Index     int
	AuthorID  snowflake.ID
	ChannelID snowflake.ID
}

func (s *PageState) embed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       s.Title,
		Description: s.Pages[s.Index],
		Color:       ColorPager,
	}
	if len(s.Pages) > 1 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d", s.Index+1, len(s.Pages)),
		}
	}
	return embed
}

// Pager shows multi-page results with reaction controls.
type Pager struct {
	chat Chat

	mu     sync.Mutex
	states map[snowflake.ID]*PageState
}

// NewPager creates a Pager that talks through chat.
func NewPager(chat Chat) *Pager {
	return &Pager{
		chat:   chat,
		states: make(map[snowflake.ID]*PageState),
	}
}

// Send posts the first page and, when there is more than one, attaches the
// controls and tracks the message.
func (p *Pager) Send(channelID, authorID snowflake.ID, title string, pages []string) (snowflake.ID, error) {
	if len(pages) == 0 {
		pages = []string{"Nothing to show."}
	}

	state := &PageState{
		Title:     title,
		Pages:     pages,
		AuthorID:  authorID,
		ChannelID: channelID,
	}

	messageID, err := p.chat.SendEmbed(channelID, state.embed())
	if err != nil {
		return 0, fmt.Errorf("failed to send paged message: %w", err)
	}
	if len(pages) == 1 {
		return messageID, nil
	}

	p.mu.Lock()
	p.states[messageID] = state
	p.mu.Unlock()

	for _, emoji := range pagerControls {
		if err := p.chat.AddReaction(channelID, messageID, emoji); err != nil {
			return messageID, fmt.Errorf("failed to add pager control %s: %w", emoji, err)
		}
	}

	return messageID, nil
}

// IsValid reports whether r is a control reaction by the author of a tracked
// message.
func (p *Pager) IsValid(r *Reaction) bool {
	if _, ok := Step(0, 0, r.Emoji); !ok {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.states[r.MessageID]
	return ok && state.AuthorID == r.UserID
}

// Turn moves the tracked message to the page r selects. It reports whether
// r was handled.
func (p *Pager) Turn(ctx context.Context, r *Reaction) (bool, error) {
	p.mu.Lock()
	state, ok := p.states[r.MessageID]
	if !ok || state.AuthorID != r.UserID {
		p.mu.Unlock()
		return false, nil
	}
	next, ok := Step(state.Index, len(state.Pages)-1, r.Emoji)
	if !ok {
		p.mu.Unlock()
		return false, nil
	}
	changed := next != state.Index
	state.Index = next
	embed := state.embed()
	p.mu.Unlock()

	if changed {
		if err := p.chat.EditMessage(r.ChannelID, r.MessageID, "", embed); err != nil {
			return true, fmt.Errorf("failed to edit paged message: %w", err)
		}
		metrics.PagerTurns.Inc()
	}

	perms, err := p.chat.ChannelPermissions(r.ChannelID)
	if err != nil {
		slog.Debug("failed to get channel permissions", "channel_id", r.ChannelID, "error", err)
		return true, nil
	}
	if perms&discordgo.PermissionManageMessages != 0 {
		if err := p.chat.RemoveReaction(r.ChannelID, r.MessageID, r.Emoji, r.UserID); err != nil {
			slog.Warn("failed to remove pager reaction", "message_id", r.MessageID, "error", err)
		}
	}

	return true, nil
}

// Index returns the current page index of a tracked message.
func (p *Pager) Index(messageID snowflake.ID) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.states[messageID]
	if !ok {
		return 0, false
	}
	return state.Index, true
}

// Sweep stops tracking messages sent before cutoff.
func (p *Pager) Sweep(cutoff time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	removed := 0
	for id := range p.states {
		if id.Time().Before(cutoff) {
			delete(p.states, id)
			removed++
		}
	}
	return removed
}

// Paginate packs lines into pages of at most limit bytes. A line longer than
// limit is split. A rune wider than limit gets a page of its own.
func Paginate(lines []string, limit int) []string {
	if limit <= 0 {
		limit = 1
	}

	var (
		pages   []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			pages = append(pages, current.String())
			current.Reset()
		}
	}

	for _, line := range lines {
		for len(line) > limit {
			flush()
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				_, cut = utf8.DecodeRuneInString(line)
			}
			pages = append(pages, line[:cut])
			line = line[cut:]
		}
		if current.Len() > 0 && current.Len()+1+len(line) > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	flush()

	return pages
}
