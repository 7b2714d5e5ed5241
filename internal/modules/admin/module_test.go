package admin

import (
	"testing"

	"github.com/sglre6355/wikibot/internal/bot"
	"github.com/sglre6355/wikibot/internal/core"
)

func TestAdminModule_LoadConfig(t *testing.T) {
	t.Setenv("ADMIN_ROLES", "Admin,Moderator")

	m := &AdminModule{}
	if err := m.LoadConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.config.AdminRoles) != 2 || m.config.AdminRoles[1] != "Moderator" {
		t.Errorf("expected roles [Admin Moderator], got %v", m.config.AdminRoles)
	}
}

func TestAdminModule_Commands(t *testing.T) {
	m := &AdminModule{}
	if err := m.Init(bot.ModuleDependencies{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat := &core.MockChat{}
	deps := core.Deps{Chat: chat, Router: core.NewRouter(), Pager: core.NewPager(chat), Prefix: "~"}
	registry := core.NewRegistry(deps, m.Commands())

	for _, name := range []string{"ping", "pong", "help", "commands", "reload", "shutdown"} {
		if registry.Lookup(name) == nil {
			t.Errorf("expected command %q to be registered", name)
		}
	}

	reload := registry.Lookup("reload")
	if len(reload.Roles) != 1 || reload.Roles[0] != "Admin" {
		t.Errorf("expected reload to require Admin, got %v", reload.Roles)
	}
}
