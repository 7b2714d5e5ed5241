package wiki

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/sglre6355/wikibot/internal/bot"
	"github.com/sglre6355/wikibot/internal/core"
	"github.com/sglre6355/wikibot/internal/modules/wiki/application"
	"github.com/sglre6355/wikibot/internal/modules/wiki/presentation"
)

func init() {
	bot.Register(&WikiModule{})
}

// WikiModule provides the commands that read and change the wiki.
type WikiModule struct {
	config  *Config
	service *application.Service
}

// Name returns the module name.
func (m *WikiModule) Name() string {
	return "wiki"
}

// Commands returns the command table rows for this module.
func (m *WikiModule) Commands() []core.Entry {
	return []core.Entry{
		{ID: "mod", New: m.newMod},
		{ID: "lang", New: m.newLanguages},
		{ID: "link", New: m.newLink},
		{ID: "page", New: m.newPage},
		{ID: "move", New: m.newMove},
		{ID: "delete", New: m.newDelete},
		{ID: "upload", New: m.newUpload},
		{ID: "redirect", New: m.newRedirect},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *WikiModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *WikiModule) Init(deps bot.ModuleDependencies) error {
	if deps.Wiki == nil {
		return errors.New("wiki module requires a wiki client")
	}
	if m.config == nil {
		if err := m.LoadConfig(); err != nil {
			return err
		}
	}
	m.service = application.NewService(deps.Wiki, m.config.ModsModule, m.config.LanguagesModule, m.config.CacheTTL)
	return nil
}

// Shutdown cleans up module resources.
func (m *WikiModule) Shutdown() error {
	return nil
}

func (m *WikiModule) newMod(core.Deps) *core.Command {
	return &core.Command{
		Name:        "mod",
		Usage:       "<abbreviation|name>",
		Description: "Looks up a mod by abbreviation or name.",
		Handler:     presentation.NewModHandler(m.service).Handle,
	}
}

func (m *WikiModule) newLanguages(deps core.Deps) *core.Command {
	return &core.Command{
		Name:        "lang",
		Aliases:     []string{"languages"},
		Description: "Lists the wiki languages.",
		Handler:     presentation.NewLanguagesHandler(m.service, deps.Pager).Handle,
	}
}

func (m *WikiModule) newLink(core.Deps) *core.Command {
	h := presentation.NewLinkHandler(m.service)
	return &core.Command{
		Name:        "link",
		Usage:       "<title...>",
		Description: "Links a wiki page. Writing [[Title]] in any message works too.",
		Handler:     h.Handle,
		Matches:     h.Matches,
	}
}

func (m *WikiModule) newPage(deps core.Deps) *core.Command {
	return &core.Command{
		Name:        "page",
		Usage:       "<title...>",
		Description: "Shows the wikitext of a page.",
		Handler:     presentation.NewPageHandler(m.service, deps.Pager).Handle,
	}
}

func (m *WikiModule) newMove(deps core.Deps) *core.Command {
	h := presentation.NewMoveHandler(m.service, deps.Chat)
	deps.Router.Register(h.Confirmations())
	return &core.Command{
		Name:        "move",
		Roles:       m.config.EditorRoles,
		Usage:       "<from> <to> [noredirect]",
		Description: "Moves a page after confirmation. Quote titles with spaces.",
		Handler:     h.Handle,
	}
}

func (m *WikiModule) newDelete(deps core.Deps) *core.Command {
	h := presentation.NewDeleteHandler(m.service, deps.Chat)
	deps.Router.Register(h.Confirmations())
	return &core.Command{
		Name:        "delete",
		Roles:       m.config.AdminRoles,
		Usage:       "<title> [reason...]",
		Description: "Deletes a page after confirmation.",
		Handler:     h.Handle,
	}
}

func (m *WikiModule) newUpload(deps core.Deps) *core.Command {
	h := presentation.NewUploadHandler(m.service, deps.Chat)
	deps.Router.Register(h.Confirmations())
	return &core.Command{
		Name:        "upload",
		Roles:       m.config.EditorRoles,
		Usage:       "<url> <filename> [comment...]",
		Description: "Uploads a file from a URL after confirmation.",
		Handler:     h.Handle,
	}
}

func (m *WikiModule) newRedirect(deps core.Deps) *core.Command {
	h := presentation.NewRedirectHandler(m.service, deps.Chat)
	deps.Router.Register(h.Confirmations())
	return &core.Command{
		Name:        "redirect",
		Roles:       m.config.EditorRoles,
		Usage:       "<from> <to>",
		Description: "Turns a page into a redirect after confirmation.",
		Handler:     h.Handle,
	}
}
