package bot

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/sglre6355/wikibot/internal/core"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`

	CommandPrefix        string `env:"COMMAND_PREFIX" envDefault:"~"`
	CommandPrefixPattern string `env:"COMMAND_PREFIX_PATTERN"`

	OwnerID string `env:"OWNER_ID"`
	Owner   snowflake.ID

	// OverridesFile is an optional YAML file of per-command overrides.
	OverridesFile string `env:"COMMAND_OVERRIDES_FILE"`

	MetricsAddr string `env:"METRICS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	ConfirmationSweepInterval time.Duration `env:"CONFIRMATION_SWEEP_INTERVAL" envDefault:"1m"`
	PagerTTL                  time.Duration `env:"PAGER_TTL" envDefault:"24h"`
}

// LoadConfig loads configuration from the given .env files, or ./.env when
// none are named, and then from environment variables. A missing .env file
// is not an error. Variables already set in the environment win.
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.OwnerID != "" {
		owner, err := snowflake.Parse(cfg.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("invalid OWNER_ID %q: %w", cfg.OwnerID, err)
		}
		cfg.Owner = owner
	}

	if cfg.CommandPrefixPattern != "" {
		if _, err := regexp.Compile(cfg.CommandPrefixPattern); err != nil {
			return nil, fmt.Errorf("invalid COMMAND_PREFIX_PATTERN: %w", err)
		}
	}

	if cfg.ConfirmationSweepInterval <= 0 {
		return nil, fmt.Errorf("CONFIRMATION_SWEEP_INTERVAL must be positive, got %s", cfg.ConfirmationSweepInterval)
	}

	return cfg, nil
}

// Processor returns the command processor for the configured prefix.
// A prefix pattern takes precedence over the literal prefix.
func (c *Config) Processor() *core.Processor {
	if c.CommandPrefixPattern != "" {
		return core.NewPatternProcessor(regexp.MustCompile(c.CommandPrefixPattern))
	}
	return core.NewProcessor(c.CommandPrefix)
}
