package admin

import (
	"github.com/caarlos0/env/v11"
	"github.com/sglre6355/wikibot/internal/bot"
	"github.com/sglre6355/wikibot/internal/core"
	"github.com/sglre6355/wikibot/internal/modules/admin/presentation"
)

func init() {
	bot.Register(&AdminModule{})
}

// AdminModule provides housekeeping commands like ping and help.
type AdminModule struct {
	config *Config
	deps   bot.ModuleDependencies
}

// Name returns the module name.
func (m *AdminModule) Name() string {
	return "admin"
}

// Commands returns the command table rows for this module.
func (m *AdminModule) Commands() []core.Entry {
	return []core.Entry{
		{ID: "ping", New: m.newPing},
		{ID: "pong", New: m.newPong},
		{ID: "help", New: m.newHelp},
		{ID: "reload", New: m.newReload},
		{ID: "shutdown", New: m.newShutdown},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *AdminModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *AdminModule) Init(deps bot.ModuleDependencies) error {
	if m.config == nil {
		m.config = &Config{AdminRoles: []string{"Admin"}}
	}
	m.deps = deps
	return nil
}

// Shutdown cleans up module resources.
func (m *AdminModule) Shutdown() error {
	return nil
}

func (m *AdminModule) newPing(core.Deps) *core.Command {
	return &core.Command{
		Name:        "ping",
		Description: "Replies with the bot's latency.",
		Handler:     presentation.NewPingHandler(nil).Handle,
	}
}

func (m *AdminModule) newPong(core.Deps) *core.Command {
	h := presentation.NewPongHandler()
	return &core.Command{
		Name:        "pong",
		Description: "Replies to any message containing 🏓.",
		Handler:     h.Handle,
		Matches:     h.Matches,
	}
}

func (m *AdminModule) newHelp(deps core.Deps) *core.Command {
	return &core.Command{
		Name:        "help",
		Aliases:     []string{"commands"},
		Usage:       "[command]",
		Description: "Lists commands. Run `{prefix}{name} <command>` for details.",
		Handler:     presentation.NewHelpHandler(deps.Pager).Handle,
	}
}

func (m *AdminModule) newReload(core.Deps) *core.Command {
	return &core.Command{
		Name:        "reload",
		Roles:       m.config.AdminRoles,
		Description: "Rebuilds the command table and reapplies overrides.",
		Handler:     presentation.NewReloadHandler().Handle,
	}
}

func (m *AdminModule) newShutdown(core.Deps) *core.Command {
	return &core.Command{
		Name:        "shutdown",
		Description: "Stops the bot. Owner only.",
		Handler:     presentation.NewShutdownHandler(m.deps.Owner, m.deps.Shutdown).Handle,
	}
}
