package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/wikibot/internal/core"
)

// Bot manages the Discord bot lifecycle and module coordination.
type Bot struct {
	config    *Config
	wiki      core.Wiki
	overrides core.OverrideSource
	session   *discordgo.Session
	modules   []Module

	router     *core.Router
	pager      *core.Pager
	registry   *core.Registry
	dispatcher *core.Dispatcher

	ctx      context.Context
	cancel   context.CancelFunc
	events   sync.WaitGroup
	eventsMu sync.Mutex
	stopped  bool
	done     chan struct{}
	doneOnce sync.Once
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config, wiki core.Wiki) *Bot {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		config:  cfg,
		wiki:    wiki,
		modules: make([]Module, 0),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// SetOverrides makes every registry build apply the overrides of src.
// It must be called before Start.
func (b *Bot) SetOverrides(src core.OverrideSource) {
	b.overrides = src
}

// LoadModules loads modules from the global registry and their configuration.
func (b *Bot) LoadModules() error {
	b.modules = Modules()

	for _, mod := range b.modules {
		configurable, ok := mod.(ConfigurableModule)
		if !ok {
			continue
		}
		if err := configurable.LoadConfig(); err != nil {
			return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
		}
	}

	return nil
}

// Start initializes the bot, registers its commands and connects to Discord.
func (b *Bot) Start() error {
	// Create Discord session
	session, err := discordgo.New("Bot " + b.config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentDirectMessages |
		discordgo.IntentDirectMessageReactions |
		discordgo.IntentMessageContent
	b.session = session

	chat := NewDiscordChat(session, func() string {
		if session.State == nil || session.State.User == nil {
			return ""
		}
		return session.State.User.ID
	})

	if err := b.setup(chat); err != nil {
		return err
	}

	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onReactionAdd)

	// Open connection
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	j := &janitor{
		router:   b.router,
		pager:    b.pager,
		interval: b.config.ConfirmationSweepInterval,
		pagerTTL: b.config.PagerTTL,
	}
	go j.run(b.ctx)

	slog.Info("started bot",
		"user_id", b.session.State.User.ID,
		"username", b.session.State.User.Username,
		"commands", len(b.registry.Commands()),
	)

	return nil
}

// setup initializes modules and builds the command registry over chat.
func (b *Bot) setup(chat core.Chat) error {
	b.router = core.NewRouter()
	b.pager = core.NewPager(chat)

	// Initialize modules
	if err := b.initModules(chat); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	deps := core.Deps{
		Chat:   chat,
		Wiki:   b.wiki,
		Router: b.router,
		Pager:  b.pager,
		Prefix: b.config.CommandPrefix,
	}

	var opts []core.RegistryOption
	if b.overrides != nil {
		opts = append(opts, core.WithOverrides(b.overrides))
	}

	b.registry = core.NewRegistry(deps, b.collectCommands(), opts...)
	b.dispatcher = core.NewDispatcher(b.registry, b.config.Processor(), deps)

	return nil
}

// Reload rebuilds the command registry.
func (b *Bot) Reload() {
	if b.registry == nil {
		return
	}
	b.registry.Reload()
	slog.Info("reloaded commands", "commands", len(b.registry.Commands()))
}

// RequestShutdown signals Done. It is safe to call more than once.
func (b *Bot) RequestShutdown() {
	b.doneOnce.Do(func() { close(b.done) })
}

// Done is closed when a shutdown was requested from chat.
func (b *Bot) Done() <-chan struct{} {
	return b.done
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	b.eventsMu.Lock()
	b.stopped = true
	b.eventsMu.Unlock()

	b.cancel()
	b.events.Wait()

	// Shutdown modules
	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	// Close Discord session
	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// initModules initializes all loaded modules.
func (b *Bot) initModules(chat core.Chat) error {
	deps := ModuleDependencies{
		Chat:     chat,
		Wiki:     b.wiki,
		Pager:    b.pager,
		Owner:    b.config.Owner,
		Shutdown: b.RequestShutdown,
	}

	for _, mod := range b.modules {
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// collectCommands gathers the command table rows of all loaded modules.
func (b *Bot) collectCommands() []core.Entry {
	var entries []core.Entry
	for _, mod := range b.modules {
		entries = append(entries, mod.Commands()...)
	}
	return entries
}

// spawn runs fn on its own goroutine so slow wiki calls do not stall other
// events. Panics are recovered. Events arriving after Stop are dropped.
func (b *Bot) spawn(handler string, fn func(ctx context.Context)) {
	b.eventsMu.Lock()
	defer b.eventsMu.Unlock()
	if b.stopped {
		return
	}
	b.events.Add(1)
	go func() {
		defer b.events.Done()
		defer recoverPanic(handler)
		fn(b.ctx)
	}()
}

// onMessageCreate dispatches a gateway message.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.spawn("message_create", func(ctx context.Context) {
		var roles RoleResolver
		if s.State != nil {
			roles = s.State
		}
		b.handleMessage(ctx, m, roles)
	})
}

func (b *Bot) handleMessage(ctx context.Context, m *discordgo.MessageCreate, roles RoleResolver) core.Outcome {
	msg, err := toMessage(m, roles)
	if err != nil {
		slog.Warn("failed to convert message", "error", err)
		return core.OutcomeIgnored
	}
	return b.dispatcher.Handle(ctx, msg)
}

// onReactionAdd dispatches a gateway reaction.
func (b *Bot) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if s.State != nil && s.State.User != nil && r.MessageReaction != nil && r.UserID == s.State.User.ID {
		return
	}
	b.spawn("reaction_add", func(ctx context.Context) {
		b.handleReaction(ctx, r)
	})
}

func (b *Bot) handleReaction(ctx context.Context, r *discordgo.MessageReactionAdd) bool {
	reaction, err := toReaction(r)
	if err != nil {
		slog.Warn("failed to convert reaction", "error", err)
		return false
	}
	return b.dispatcher.HandleReaction(ctx, reaction)
}
