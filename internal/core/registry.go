package core

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sahilm/fuzzy"
)

// catalog is an immutable snapshot of the registered commands.
type catalog struct {
	commands []*Command
	lookup   map[string]*Command
}

// Override adjusts a command by name when the registry is built.
type Override struct {
	// Roles replaces the command's required roles when non-nil.
	Roles    []string
	Disabled bool
}

// OverrideSource supplies the overrides applied on every build.
type OverrideSource interface {
	Overrides() map[string]Override
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithOverrides applies the overrides of src on every build.
func WithOverrides(src OverrideSource) RegistryOption {
	return func(r *Registry) { r.overrides = src }
}

// Registry maps command names and aliases to command instances.
//
// Lookups read an immutable snapshot; Reload builds a new one and swaps it in.
type Registry struct {
	deps      Deps
	entries   []Entry
	overrides OverrideSource

	reloadMu sync.Mutex
	current  atomic.Pointer[catalog]
}

// NewRegistry builds the commands of entries with deps.
func NewRegistry(deps Deps, entries []Entry, opts ...RegistryOption) *Registry {
	r := &Registry{
		deps:    deps,
		entries: entries,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Reload()
	return r
}

// Reload discards every command instance and constructs them again.
// Pending confirmations of the discarded instances are dropped.
func (r *Registry) Reload() {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	if r.deps.Router != nil {
		r.deps.Router.Reset()
	}

	var overrides map[string]Override
	if r.overrides != nil {
		overrides = r.overrides.Overrides()
	}

	r.current.Store(buildCatalog(r.deps, r.entries, overrides))
}

func buildCatalog(deps Deps, entries []Entry, overrides map[string]Override) *catalog {
	commands := make([]*Command, 0, len(entries))
	for _, entry := range entries {
		if entry.Disabled {
			slog.Debug("skipped disabled command", "command", entry.ID)
			continue
		}
		// Constructors may register confirmation managers, so a disabled
		// command must not be built at all.
		if overrides[strings.ToLower(entry.ID)].Disabled {
			slog.Debug("skipped command disabled by override", "command", entry.ID)
			continue
		}
		cmd := entry.New(deps)
		if cmd == nil {
			continue
		}
		cmd.Name = strings.ToLower(cmd.Name)
		if override, ok := overrides[cmd.Name]; ok {
			if override.Disabled {
				slog.Debug("skipped command disabled by override", "command", cmd.Name)
				continue
			}
			if override.Roles != nil {
				cmd.Roles = override.Roles
			}
		}
		commands = append(commands, cmd)
	}

	lookup := make(map[string]*Command)
	collided := make(map[string]struct{})
	for _, cmd := range commands {
		for _, key := range cmd.Keys() {
			if key == "" {
				continue
			}
			if _, ok := collided[key]; ok {
				continue
			}
			existing, ok := lookup[key]
			if ok && existing != cmd {
				slog.Error("found duplicate command name",
					"name", key,
					"command", cmd.Name,
					"existing", existing.Name,
				)
				delete(lookup, key)
				collided[key] = struct{}{}
				continue
			}
			lookup[key] = cmd
		}
	}

	slog.Debug("built command registry", "commands", len(commands), "keys", len(lookup))

	return &catalog{commands: commands, lookup: lookup}
}

// Lookup returns the command registered under name or alias, or nil.
func (r *Registry) Lookup(name string) *Command {
	return r.current.Load().lookup[strings.ToLower(name)]
}

// Commands returns the registered commands in table order.
func (r *Registry) Commands() []*Command {
	commands := r.current.Load().commands
	result := make([]*Command, len(commands))
	copy(result, commands)
	return result
}

// Match returns the first command, in table order, whose predicate claims msg.
func (r *Registry) Match(msg *Message) *Command {
	for _, cmd := range r.current.Load().commands {
		if cmd.Matches != nil && cmd.Matches(msg) {
			return cmd
		}
	}
	return nil
}

// Suggest returns up to limit registered names and aliases that fuzzily
// match name, best first.
func (r *Registry) Suggest(name string, limit int) []string {
	lookup := r.current.Load().lookup
	keys := make([]string, 0, len(lookup))
	for key := range lookup {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	matches := fuzzy.Find(strings.ToLower(name), keys)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	suggestions := make([]string, 0, len(matches))
	for _, match := range matches {
		suggestions = append(suggestions, keys[match.Index])
	}
	return suggestions
}
