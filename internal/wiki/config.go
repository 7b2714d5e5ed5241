package wiki

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds MediaWiki connection settings.
type Config struct {
	// APIURL is the api.php endpoint, e.g. https://wiki.example.com/api.php.
	APIURL string `env:"API_URL,notEmpty"`
	// ArticleURL is the page URL template with $1 standing for the title.
	// Defaults to index.php?title=$1 next to APIURL.
	ArticleURL string `env:"ARTICLE_URL"`

	// Username and Password are a bot password pair, needed for writes.
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	UserAgent         string        `env:"USER_AGENT" envDefault:"wikibot/1.0"`
	Timeout           time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MaxRetries        int           `env:"MAX_RETRIES" envDefault:"3"`
	RequestsPerSecond float64       `env:"REQUESTS_PER_SECOND" envDefault:"5"`
}

// LoadConfig loads the WIKI_ prefixed environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "WIKI_"}); err != nil {
		return nil, err
	}

	if cfg.ArticleURL == "" {
		cfg.ArticleURL = strings.TrimSuffix(cfg.APIURL, "api.php") + "index.php?title=$1"
	}

	return cfg, nil
}

// HasCredentials reports whether a bot password is configured.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
