package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env            string `env:"APP_ENV" env-default:"development"`
		Port           int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl      string `env:"SENTRY_URL"`
		AllowedOrigins string `env:"APP_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Facebook struct {
		GraphBaseURL string `env:"FACEBOOK_GRAPH_BASE_URL" env-default:"https://graph.facebook.com"`
		GraphVersion string `env:"FACEBOOK_GRAPH_VERSION" env-default:"v23.0"`
	}
	Instagram struct {
		PollInterval time.Duration `env:"INSTAGRAM_POLL_INTERVAL" env-default:"3s"`
		PollAttempts int           `env:"INSTAGRAM_POLL_ATTEMPTS" env-default:"20"`
	}
	Gemini struct {
		APIKey string `env:"GEMINI_API_KEY"`
		Model  string `env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
	}
	Insights struct {
		RefreshInterval time.Duration `env:"INSIGHTS_REFRESH_INTERVAL" env-default:"10m"`
		RefreshWindow   time.Duration `env:"INSIGHTS_REFRESH_WINDOW" env-default:"168h"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the Postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
