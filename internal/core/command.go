package core

import (
	"context"
	"errors"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// ErrUsage is returned by a command handler when its arguments are wrong.
// The dispatcher answers it with the command's usage.
var ErrUsage = errors.New("invalid command usage")

// Handler executes a command.
type Handler func(ctx context.Context, inv *Invocation) error

// Command describes a chat command.
type Command struct {
	// Name is the unique, lowercase command name.
	Name string
	// Aliases are alternative names, unique across all commands.
	Aliases []string
	// Roles lists the role names allowed to run the command. Holding any one
	// of them is enough; an empty list means no restriction.
	Roles []string
	// Usage is the argument synopsis, e.g. "<from> <to> [noredirect]".
	Usage string
	// Description may use the {prefix} and {name} placeholders.
	Description string
	Handler     Handler
	// Matches optionally claims messages that carry no command prefix.
	Matches func(msg *Message) bool
}

// UsageLine returns the full invocation synopsis for prefix.
func (c *Command) UsageLine(prefix string) string {
	line := prefix + c.Name
	if c.Usage != "" {
		line += " " + c.Usage
	}
	return line
}

// DescriptionFor expands the description placeholders for prefix.
func (c *Command) DescriptionFor(prefix string) string {
	return strings.NewReplacer("{prefix}", prefix, "{name}", c.Name).Replace(c.Description)
}

// Keys returns the lowercased name followed by the lowercased aliases.
func (c *Command) Keys() []string {
	keys := make([]string, 0, 1+len(c.Aliases))
	keys = append(keys, strings.ToLower(c.Name))
	for _, alias := range c.Aliases {
		keys = append(keys, strings.ToLower(alias))
	}
	return keys
}

// Deps are the shared handles passed to command constructors.
type Deps struct {
	Chat   Chat
	Wiki   Wiki
	Router *Router
	Pager  *Pager
	Prefix string
}

// Constructor builds a command instance. It is called again on every reload.
type Constructor func(deps Deps) *Command

// Entry is one row of the static command table.
type Entry struct {
	// ID is the command's name. Overrides that disable it are checked
	// against ID before the constructor runs.
	ID       string
	New      Constructor
	Disabled bool
}

// Invocation is the context a command handler runs with.
type Invocation struct {
	Message  *Message
	Args     *Args
	Registry *Registry
	Chat     Chat
	Wiki     Wiki
	Prefix   string
}

// Reply sends a plain text message to the invoking channel.
func (inv *Invocation) Reply(content string) (snowflake.ID, error) {
	return inv.Chat.SendMessage(inv.Message.ChannelID, content)
}
