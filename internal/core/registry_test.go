package core

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func noop(context.Context, *Invocation) error { return nil }

func entryFor(name string, aliases ...string) Entry {
	return Entry{
		ID: name,
		New: func(Deps) *Command {
			return &Command{Name: name, Aliases: aliases, Handler: noop}
		},
	}
}

func TestRegistry_LookupByNameAndAlias(t *testing.T) {
	r := NewRegistry(Deps{}, []Entry{entryFor("Lang", "languages")})

	if r.Lookup("lang") == nil {
		t.Error("expected lang to be registered")
	}
	if r.Lookup("LANGUAGES") == nil {
		t.Error("expected alias lookup to be case-insensitive")
	}
	if r.Lookup("missing") != nil {
		t.Error("expected unknown name to resolve to nil")
	}
}

func TestRegistry_DuplicateNameIsUnreachable(t *testing.T) {
	logs := captureLogs(t)

	r := NewRegistry(Deps{}, []Entry{
		entryFor("dup"),
		entryFor("dup"),
		entryFor("dup"),
		entryFor("other"),
	})

	if r.Lookup("dup") != nil {
		t.Error("expected duplicate name to be unreachable")
	}
	if r.Lookup("other") == nil {
		t.Error("expected other to stay reachable")
	}
	if got := strings.Count(logs.String(), "found duplicate command name"); got != 1 {
		t.Errorf("expected 1 duplicate error, got %d", got)
	}
}

func TestRegistry_AliasCollidingWithName(t *testing.T) {
	logs := captureLogs(t)

	r := NewRegistry(Deps{}, []Entry{
		entryFor("delete"),
		entryFor("remove", "delete", "rm"),
	})

	if r.Lookup("delete") != nil {
		t.Error("expected colliding key to be unreachable")
	}
	if r.Lookup("remove") == nil || r.Lookup("rm") == nil {
		t.Error("expected non-colliding keys to stay reachable")
	}
	if got := strings.Count(logs.String(), "found duplicate command name"); got != 1 {
		t.Errorf("expected 1 duplicate error, got %d", got)
	}
}

func TestRegistry_OwnAliasDoesNotCollide(t *testing.T) {
	r := NewRegistry(Deps{}, []Entry{entryFor("help", "help", "h")})

	if r.Lookup("help") == nil {
		t.Error("expected a command not to collide with itself")
	}
}

func TestRegistry_SkipsDisabled(t *testing.T) {
	disabled := entryFor("hidden")
	disabled.Disabled = true

	r := NewRegistry(Deps{}, []Entry{disabled, entryFor("shown")})

	if r.Lookup("hidden") != nil {
		t.Error("expected disabled command to be skipped")
	}
	if len(r.Commands()) != 1 {
		t.Errorf("expected 1 command, got %d", len(r.Commands()))
	}
}

func TestRegistry_ReloadRebuildsInstances(t *testing.T) {
	router := NewRouter()
	constructed := 0
	entry := Entry{
		ID: "counter",
		New: func(deps Deps) *Command {
			constructed++
			deps.Router.Register(MustConfirmations(&MockChat{}, []string{EmojiConfirm},
				map[string]OutcomeHandler[string]{
					EmojiConfirm: func(context.Context, string, *Reaction) error { return nil },
				}))
			return &Command{Name: "counter", Handler: noop}
		},
	}

	r := NewRegistry(Deps{Router: router}, []Entry{entry})
	before := r.Lookup("counter")

	r.Reload()

	if constructed != 2 {
		t.Errorf("expected 2 constructions, got %d", constructed)
	}
	if r.Lookup("counter") == before {
		t.Error("expected reload to replace the command instance")
	}
	if router.Len() != 1 {
		t.Errorf("expected router to hold only the new manager, got %d", router.Len())
	}
}

func TestRegistry_MatchUsesPredicate(t *testing.T) {
	r := NewRegistry(Deps{}, []Entry{
		entryFor("plain"),
		{
			ID: "pong",
			New: func(Deps) *Command {
				return &Command{
					Name:    "pong",
					Handler: noop,
					Matches: func(msg *Message) bool { return strings.Contains(msg.Content, "🏓") },
				}
			},
		},
	})

	if cmd := r.Match(&Message{Content: "🏓 hi"}); cmd == nil || cmd.Name != "pong" {
		t.Errorf("expected pong to match, got %+v", cmd)
	}
	if cmd := r.Match(&Message{Content: "hello"}); cmd != nil {
		t.Errorf("expected no match, got %s", cmd.Name)
	}
}

type staticOverrides map[string]Override

func (s staticOverrides) Overrides() map[string]Override { return s }

func TestRegistry_AppliesOverrides(t *testing.T) {
	r := NewRegistry(Deps{}, []Entry{entryFor("move"), entryFor("delete")}, WithOverrides(staticOverrides{
		"move":   {Roles: []string{"Moderator"}},
		"delete": {Disabled: true},
	}))

	move := r.Lookup("move")
	if move == nil {
		t.Fatal("expected move to be registered")
	}
	if len(move.Roles) != 1 || move.Roles[0] != "Moderator" {
		t.Errorf("expected roles [Moderator], got %v", move.Roles)
	}
	if r.Lookup("delete") != nil {
		t.Error("expected delete to be disabled by override")
	}
}

func TestRegistry_OverrideDisabledIsNotConstructed(t *testing.T) {
	router := NewRouter()
	constructed := 0
	entry := Entry{
		ID: "delete",
		New: func(deps Deps) *Command {
			constructed++
			deps.Router.Register(MustConfirmations(&MockChat{}, []string{EmojiConfirm},
				map[string]OutcomeHandler[string]{
					EmojiConfirm: func(context.Context, string, *Reaction) error { return nil },
				}))
			return &Command{Name: "delete", Handler: noop}
		},
	}

	r := NewRegistry(Deps{Router: router}, []Entry{entry}, WithOverrides(staticOverrides{
		"delete": {Disabled: true},
	}))

	if r.Lookup("delete") != nil {
		t.Error("expected delete to be disabled by override")
	}
	if constructed != 0 {
		t.Errorf("expected no constructions, got %d", constructed)
	}
	if router.Len() != 0 {
		t.Errorf("expected no confirmation managers, got %d", router.Len())
	}
}

func TestRegistry_Suggest(t *testing.T) {
	r := NewRegistry(Deps{}, []Entry{entryFor("move"), entryFor("mod"), entryFor("lang", "languages")})

	got := r.Suggest("mv", 3)
	if len(got) != 1 || got[0] != "move" {
		t.Errorf("expected [move], got %v", got)
	}

	if got := r.Suggest("xyz", 3); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}
