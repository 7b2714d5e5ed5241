package core

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sglre6355/wikibot/internal/metrics"
	"github.com/sglre6355/wikibot/internal/tracing"
)

// Outcome is the result of dispatching a message.
type Outcome int

const (
	// OutcomeIgnored means no command claimed the message.
	OutcomeIgnored Outcome = iota
	// OutcomeDenied means the author lacked the command's roles.
	OutcomeDenied
	// OutcomeExecuted means the command ran successfully.
	OutcomeExecuted
	// OutcomeUsage means the command rejected its arguments.
	OutcomeUsage
	// OutcomeFailed means the command returned an error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDenied:
		return metrics.OutcomeDenied
	case OutcomeExecuted:
		return metrics.OutcomeExecuted
	case OutcomeUsage:
		return metrics.OutcomeUsage
	case OutcomeFailed:
		return metrics.OutcomeFailed
	default:
		return "ignored"
	}
}

// Dispatcher routes chat events to commands, confirmations and pagers.
type Dispatcher struct {
	registry  *Registry
	processor *Processor
	deps      Deps
}

// NewDispatcher creates a Dispatcher. deps supplies the chat and wiki
// handles passed to commands and the router and pager for reactions.
func NewDispatcher(registry *Registry, processor *Processor, deps Deps) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		processor: processor,
		deps:      deps,
	}
}

// Registry returns the dispatcher's command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// resolve finds the command msg is directed at.
func (d *Dispatcher) resolve(msg *Message) (*Command, *Args) {
	if args := d.processor.Process(msg.Content); args != nil {
		return d.registry.Lookup(args.Command), args
	}

	cmd := d.registry.Match(msg)
	if cmd == nil {
		return nil, nil
	}
	args := Tokenize(msg.Content)
	if args == nil {
		args = &Args{}
	}
	return cmd, args
}

// Handle dispatches msg to the command it addresses.
func (d *Dispatcher) Handle(ctx context.Context, msg *Message) Outcome {
	if msg == nil || msg.AuthorBot {
		return OutcomeIgnored
	}

	cmd, args := d.resolve(msg)
	if cmd == nil {
		return OutcomeIgnored
	}

	ctx, span := tracing.StartSpan(ctx, "command."+cmd.Name)
	defer span.End()
	tracing.AddCommandAttributes(span, cmd.Name, msg.ChannelID.String())

	start := time.Now()
	outcome := d.execute(ctx, cmd, args, msg)
	metrics.RecordCommand(cmd.Name, outcome.String(), time.Since(start).Seconds())

	return outcome
}

func (d *Dispatcher) execute(ctx context.Context, cmd *Command, args *Args, msg *Message) Outcome {
	if !HasRequiredRole(msg.Roles, cmd.Roles) {
		slog.Debug("denied command",
			"command", cmd.Name,
			"user_id", msg.AuthorID,
			"required_roles", cmd.Roles,
		)
		SendText(d.deps.Chat, msg.ChannelID, MissingRoleMessage(cmd.Roles))
		return OutcomeDenied
	}

	inv := &Invocation{
		Message:  msg,
		Args:     args,
		Registry: d.registry,
		Chat:     d.deps.Chat,
		Wiki:     d.deps.Wiki,
		Prefix:   d.deps.Prefix,
	}

	err := cmd.Handler(ctx, inv)
	switch {
	case err == nil:
		return OutcomeExecuted
	case errors.Is(err, ErrUsage):
		SendText(d.deps.Chat, msg.ChannelID, UsageMessage(cmd, d.deps.Prefix))
		return OutcomeUsage
	default:
		slog.Error("failed to handle command", "command", cmd.Name, "error", err)
		SendText(d.deps.Chat, msg.ChannelID, GenericFailure)
		return OutcomeFailed
	}
}

// HandleReaction offers r to the pager, then to the confirmation router.
// It reports whether r was consumed.
func (d *Dispatcher) HandleReaction(ctx context.Context, r *Reaction) bool {
	if r == nil {
		return false
	}

	if d.deps.Pager != nil && d.deps.Pager.IsValid(r) {
		handled, err := d.deps.Pager.Turn(ctx, r)
		if err != nil {
			slog.Error("failed to turn page", "message_id", r.MessageID, "error", err)
		}
		return handled
	}

	if d.deps.Router == nil {
		return false
	}

	handled, err := d.deps.Router.Route(ctx, r)
	if err != nil {
		slog.Error("failed to resolve confirmation", "message_id", r.MessageID, "error", err)
	}
	return handled
}
