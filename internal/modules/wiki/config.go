package wiki

import "time"

// Config holds the wiki module configuration.
type Config struct {
	// EditorRoles may move, upload and redirect pages.
	EditorRoles []string `env:"EDITOR_ROLES" envDefault:"Editor"`
	// AdminRoles may delete pages.
	AdminRoles []string `env:"ADMIN_ROLES" envDefault:"Admin"`

	// ModsModule evaluates to the mods list.
	ModsModule string `env:"MODS_MODULE" envDefault:"Module:Mods/list"`
	// LanguagesModule evaluates to the language names.
	LanguagesModule string `env:"LANGUAGES_MODULE" envDefault:"Module:Language/Names"`

	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}
