package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/wikibot/internal/metrics"
)

// ConfirmationWindow is how long after the prompt was sent a reaction may
// still confirm it.
const ConfirmationWindow = 10 * time.Minute

// Reaction emojis used by confirmation prompts.
const (
	EmojiConfirm = "✅"
	EmojiCancel  = "❌"
	EmojiDelete  = "🗑️"
)

// ErrInvalidConfirmation is returned when the emoji list and the outcome map
// of a confirmation manager disagree.
var ErrInvalidConfirmation = errors.New("confirmation emojis do not match outcomes")

// OutcomeHandler runs when a pending confirmation is resolved with its emoji.
type OutcomeHandler[P any] func(ctx context.Context, payload P, reaction *Reaction) error

// Pending is a proposed action awaiting its author's reaction.
type Pending[P any] struct {
	PromptID  snowflake.ID
	ChannelID snowflake.ID
	AuthorID  snowflake.ID
	CreatedAt time.Time
	Payload   P
}

// ConfirmationOption configures a confirmation manager.
type ConfirmationOption func(*confirmationOptions)

type confirmationOptions struct {
	window time.Duration
	now    func() time.Time
}

// WithWindow overrides ConfirmationWindow.
func WithWindow(window time.Duration) ConfirmationOption {
	return func(o *confirmationOptions) { o.window = window }
}

// WithConfirmationClock sets the time source.
func WithConfirmationClock(now func() time.Time) ConfirmationOption {
	return func(o *confirmationOptions) { o.now = now }
}

// Confirmations tracks the pending confirmations of one command.
//
// Entries are keyed by prompt message ID and removed atomically when
// resolved, so at most one outcome handler runs per proposal.
type Confirmations[P any] struct {
	chat     Chat
	emojis   []string
	outcomes map[string]OutcomeHandler[P]
	window   time.Duration
	now      func() time.Time

	mu      sync.Mutex
	pending map[snowflake.ID]*Pending[P]
}

// NewConfirmations creates a manager that attaches emojis, in order, to every
// prompt and runs the outcome mapped to the emoji the author reacts with.
// The emoji list and the outcome keys must hold the same members.
func NewConfirmations[P any](
	chat Chat,
	emojis []string,
	outcomes map[string]OutcomeHandler[P],
	opts ...ConfirmationOption,
) (*Confirmations[P], error) {
	if len(emojis) == 0 || len(emojis) != len(outcomes) {
		return nil, fmt.Errorf("%w: %d emojis, %d outcomes", ErrInvalidConfirmation, len(emojis), len(outcomes))
	}
	for _, emoji := range emojis {
		if _, ok := outcomes[emoji]; !ok {
			return nil, fmt.Errorf("%w: no outcome for %s", ErrInvalidConfirmation, emoji)
		}
	}

	o := confirmationOptions{window: ConfirmationWindow, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Confirmations[P]{
		chat:     chat,
		emojis:   append([]string(nil), emojis...),
		outcomes: outcomes,
		window:   o.window,
		now:      o.now,
		pending:  make(map[snowflake.ID]*Pending[P]),
	}, nil
}

// MustConfirmations is like NewConfirmations but panics on a mismatch.
func MustConfirmations[P any](
	chat Chat,
	emojis []string,
	outcomes map[string]OutcomeHandler[P],
	opts ...ConfirmationOption,
) *Confirmations[P] {
	c, err := NewConfirmations(chat, emojis, outcomes, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Propose registers payload under promptID and attaches the reactions.
// If a reaction cannot be attached the proposal is withdrawn.
func (c *Confirmations[P]) Propose(channelID, promptID, authorID snowflake.ID, payload P) error {
	c.mu.Lock()
	c.pending[promptID] = &Pending[P]{
		PromptID:  promptID,
		ChannelID: channelID,
		AuthorID:  authorID,
		CreatedAt: c.now(),
		Payload:   payload,
	}
	c.mu.Unlock()

	for _, emoji := range c.emojis {
		if err := c.chat.AddReaction(channelID, promptID, emoji); err != nil {
			c.mu.Lock()
			delete(c.pending, promptID)
			c.mu.Unlock()
			return fmt.Errorf("failed to add reaction %s: %w", emoji, err)
		}
	}

	metrics.RecordConfirmation(metrics.ConfirmationProposed)
	return nil
}

// Prompt sends embed to channelID and proposes payload on it.
func (c *Confirmations[P]) Prompt(
	channelID, authorID snowflake.ID,
	embed *discordgo.MessageEmbed,
	payload P,
) (snowflake.ID, error) {
	promptID, err := c.chat.SendEmbed(channelID, embed)
	if err != nil {
		return 0, fmt.Errorf("failed to send confirmation prompt: %w", err)
	}
	if err := c.Propose(channelID, promptID, authorID, payload); err != nil {
		return promptID, err
	}
	return promptID, nil
}

func (c *Confirmations[P]) matches(p *Pending[P], r *Reaction) bool {
	if p == nil || p.AuthorID != r.UserID {
		return false
	}
	_, ok := c.outcomes[r.Emoji]
	return ok
}

// IsValid reports whether r is the author's reaction with one of the outcome
// emojis on a pending prompt. Elapsed time is not considered.
func (c *Confirmations[P]) IsValid(r *Reaction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matches(c.pending[r.MessageID], r)
}

// Resolve consumes the pending entry r is valid for and, unless the prompt is
// older than the window, runs the outcome mapped to r's emoji. It reports
// whether a handler ran.
func (c *Confirmations[P]) Resolve(ctx context.Context, r *Reaction) (bool, error) {
	c.mu.Lock()
	p := c.pending[r.MessageID]
	if !c.matches(p, r) {
		c.mu.Unlock()
		return false, nil
	}
	delete(c.pending, r.MessageID)
	c.mu.Unlock()

	if c.now().Sub(r.MessageID.Time()) > c.window {
		slog.Debug("dropped expired confirmation", "message_id", r.MessageID, "user_id", r.UserID)
		metrics.RecordConfirmation(metrics.ConfirmationExpired)
		return false, nil
	}

	metrics.RecordConfirmation(metrics.ConfirmationResolved)
	return true, c.outcomes[r.Emoji](ctx, p.Payload, r)
}

// Sweep removes entries whose prompt was sent more than the window before now.
func (c *Confirmations[P]) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id := range c.pending {
		if now.Sub(id.Time()) > c.window {
			delete(c.pending, id)
			removed++
		}
	}
	for range removed {
		metrics.RecordConfirmation(metrics.ConfirmationSwept)
	}
	return removed
}

// Len returns the number of pending entries.
func (c *Confirmations[P]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
