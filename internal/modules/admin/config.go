package admin

// Config holds the admin module configuration.
type Config struct {
	// AdminRoles may reload the command registry.
	AdminRoles []string `env:"ADMIN_ROLES" envDefault:"Admin"`
}
