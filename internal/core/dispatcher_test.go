package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type dispatchFixture struct {
	chat       *MockChat
	router     *Router
	pager      *Pager
	dispatcher *Dispatcher
	lastArgs   *Args
	runs       int
}

func newDispatchFixture(t *testing.T, handlerErr error) *dispatchFixture {
	t.Helper()
	f := &dispatchFixture{chat: &MockChat{}, router: NewRouter()}
	f.pager = NewPager(f.chat)

	deps := Deps{Chat: f.chat, Router: f.router, Pager: f.pager, Prefix: "~"}
	entries := []Entry{
		{
			ID: "move",
			New: func(Deps) *Command {
				return &Command{
					Name:  "move",
					Roles: []string{"Editor"},
					Usage: "<from> <to>",
					Handler: func(_ context.Context, inv *Invocation) error {
						f.runs++
						f.lastArgs = inv.Args
						return handlerErr
					},
				}
			},
		},
		{
			ID: "pong",
			New: func(Deps) *Command {
				return &Command{
					Name: "pong",
					Matches: func(msg *Message) bool {
						return strings.Contains(msg.Content, "🏓")
					},
					Handler: func(_ context.Context, inv *Invocation) error {
						_, err := inv.Reply("Pong 🏓")
						return err
					},
				}
			},
		},
	}

	registry := NewRegistry(deps, entries)
	f.dispatcher = NewDispatcher(registry, NewProcessor("~"), deps)
	return f
}

func message(content string, roles ...string) *Message {
	return &Message{
		ID:        snowflake.New(time.Now()),
		ChannelID: testChannel,
		AuthorID:  testAuthor,
		Roles:     roles,
		Content:   content,
	}
}

func TestDispatcher_DeniesMissingRole(t *testing.T) {
	f := newDispatchFixture(t, nil)

	outcome := f.dispatcher.Handle(context.Background(), message("~move A B", "Member"))

	if outcome != OutcomeDenied {
		t.Errorf("expected OutcomeDenied, got %v", outcome)
	}
	if f.runs != 0 {
		t.Errorf("expected handler not to run, got %d runs", f.runs)
	}
	msg, ok := f.chat.LastSent()
	if !ok {
		t.Fatal("expected a reply, got none")
	}
	if msg.Content != "You must be a `Editor` to execute this command!" {
		t.Errorf("unexpected reply %q", msg.Content)
	}
}

func TestDispatcher_ExecutesWithArgs(t *testing.T) {
	f := newDispatchFixture(t, nil)

	outcome := f.dispatcher.Handle(context.Background(), message(`~MOVE "Old page" New`, "Editor"))

	if outcome != OutcomeExecuted {
		t.Errorf("expected OutcomeExecuted, got %v", outcome)
	}
	if f.runs != 1 {
		t.Fatalf("expected 1 run, got %d", f.runs)
	}
	if f.lastArgs.Get(0) != "Old page" || f.lastArgs.Get(1) != "New" {
		t.Errorf("unexpected args %q", f.lastArgs.Tokens)
	}
}

func TestDispatcher_IgnoresUnknownCommand(t *testing.T) {
	f := newDispatchFixture(t, nil)

	if outcome := f.dispatcher.Handle(context.Background(), message("~nothing")); outcome != OutcomeIgnored {
		t.Errorf("expected OutcomeIgnored, got %v", outcome)
	}
	if len(f.chat.Sent()) != 0 {
		t.Errorf("expected no replies, got %d", len(f.chat.Sent()))
	}
}

func TestDispatcher_IgnoresBots(t *testing.T) {
	f := newDispatchFixture(t, nil)
	msg := message("~move a b", "Editor")
	msg.AuthorBot = true

	if outcome := f.dispatcher.Handle(context.Background(), msg); outcome != OutcomeIgnored {
		t.Errorf("expected OutcomeIgnored, got %v", outcome)
	}
	if f.runs != 0 {
		t.Errorf("expected handler not to run, got %d runs", f.runs)
	}
}

func TestDispatcher_FallsBackToPredicate(t *testing.T) {
	f := newDispatchFixture(t, nil)

	if outcome := f.dispatcher.Handle(context.Background(), message("ping 🏓")); outcome != OutcomeExecuted {
		t.Errorf("expected OutcomeExecuted, got %v", outcome)
	}
	msg, _ := f.chat.LastSent()
	if msg.Content != "Pong 🏓" {
		t.Errorf("expected Pong reply, got %q", msg.Content)
	}
}

func TestDispatcher_RepliesWithUsage(t *testing.T) {
	f := newDispatchFixture(t, fmt.Errorf("missing target: %w", ErrUsage))

	outcome := f.dispatcher.Handle(context.Background(), message("~move A", "Editor"))

	if outcome != OutcomeUsage {
		t.Errorf("expected OutcomeUsage, got %v", outcome)
	}
	msg, _ := f.chat.LastSent()
	if msg.Content != "Usage: `~move <from> <to>`" {
		t.Errorf("unexpected reply %q", msg.Content)
	}
}

func TestDispatcher_RepliesOnFailure(t *testing.T) {
	f := newDispatchFixture(t, errors.New("boom"))

	outcome := f.dispatcher.Handle(context.Background(), message("~move A B", "Editor"))

	if outcome != OutcomeFailed {
		t.Errorf("expected OutcomeFailed, got %v", outcome)
	}
	msg, _ := f.chat.LastSent()
	if msg.Content != GenericFailure {
		t.Errorf("expected generic failure reply, got %q", msg.Content)
	}
}

func TestDispatcher_RoutesReactions(t *testing.T) {
	f := newDispatchFixture(t, nil)

	confirmed := 0
	mgr := MustConfirmations(f.chat, []string{EmojiConfirm, EmojiCancel}, map[string]OutcomeHandler[string]{
		EmojiConfirm: func(context.Context, string, *Reaction) error {
			confirmed++
			return nil
		},
		EmojiCancel: func(context.Context, string, *Reaction) error { return nil },
	})
	f.router.Register(mgr)

	promptID, err := mgr.Prompt(testChannel, testAuthor, nil, "payload")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	r := &Reaction{MessageID: promptID, ChannelID: testChannel, UserID: testAuthor, Emoji: EmojiConfirm}
	if !f.dispatcher.HandleReaction(context.Background(), r) {
		t.Error("expected reaction to be handled")
	}
	if f.dispatcher.HandleReaction(context.Background(), r) {
		t.Error("expected second reaction to be ignored")
	}
	if confirmed != 1 {
		t.Errorf("expected 1 confirmation, got %d", confirmed)
	}
}

func TestDispatcher_RoutesPagerReactions(t *testing.T) {
	f := newDispatchFixture(t, nil)

	id, err := f.pager.Send(testChannel, testAuthor, "Pages", []string{"a", "b"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	r := &Reaction{MessageID: id, ChannelID: testChannel, UserID: testAuthor, Emoji: EmojiForward}
	if !f.dispatcher.HandleReaction(context.Background(), r) {
		t.Error("expected pager reaction to be handled")
	}
	if index, _ := f.pager.Index(id); index != 1 {
		t.Errorf("expected index 1, got %d", index)
	}
}
