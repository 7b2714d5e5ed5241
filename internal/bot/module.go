package bot

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/wikibot/internal/core"
)

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Chat  core.Chat
	Wiki  core.Wiki
	Pager *core.Pager

	// Owner is the only user allowed to run owner commands.
	Owner snowflake.ID

	// Shutdown asks the bot to stop. It does not block.
	Shutdown func()
}

// Module defines the interface that all bot modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the command table rows this module provides.
	// Constructors run on every registry build, after Init.
	Commands() []core.Entry

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before Init.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Called before Init() and before Discord connection is established.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
