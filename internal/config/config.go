// apps/go-server/internal/config/config.go
//
// Process configuration.
// Responsibilities:
//   - Load .env (if present) and parse environment variables into Config.
//   - Build the game rules the tables are created with.
//   - Expose the derived logging level and cookie/CORS settings.

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/spectrum/apps/go-server/internal/game"
)

// Config holds every setting read from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/spectrum.db"`
	Env      string `env:"NODE_ENV"`

	JWTSecret       string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresHours int    `env:"JWT_EXPIRES_HOURS" envDefault:"12"`
	CookieName      string `env:"COOKIE_NAME" envDefault:"spectrum_session"`
	ClientOrigin    string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	SeedSalt  string `env:"SEED_SALT" envDefault:"local_dev_salt"`
	CardsFile string `env:"SPECTRUM_CARDS_FILE"`

	MinPlayers         int           `env:"MIN_PLAYERS" envDefault:"2"`
	MaxPlayers         int           `env:"MAX_PLAYERS" envDefault:"4"`
	ScoreOptions       []int         `env:"SCORE_OPTIONS" envDefault:"20,50,100" envSeparator:","`
	DefaultTargetScore int           `env:"DEFAULT_TARGET_SCORE" envDefault:"12"`
	TimerSeconds       int           `env:"TIMER_SECONDS" envDefault:"60"`
	TickInterval       time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`
	Wraparound         bool          `env:"SPECTRUM_WRAPAROUND" envDefault:"false"`
}

// Load reads .env (missing file is fine) and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads Config from the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MinPlayers < 1 || cfg.MaxPlayers < cfg.MinPlayers {
		return Config{}, fmt.Errorf("player bounds %d..%d are invalid", cfg.MinPlayers, cfg.MaxPlayers)
	}
	if cfg.TimerSeconds <= 0 {
		return Config{}, fmt.Errorf("TIMER_SECONDS must be positive, got %d", cfg.TimerSeconds)
	}
	if cfg.TickInterval <= 0 {
		return Config{}, fmt.Errorf("TICK_INTERVAL must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}

// Production reports NODE_ENV=production.
func (c Config) Production() bool { return c.Env == "production" }

// Rules builds the game rules for new tables.
func (c Config) Rules() game.Rules {
	r := game.DefaultRules()
	r.MinPlayers = c.MinPlayers
	r.MaxPlayers = c.MaxPlayers
	if len(c.ScoreOptions) > 0 {
		r.ScoreOptions = append([]int(nil), c.ScoreOptions...)
	}
	r.TimerSeconds = c.TimerSeconds
	r.Wraparound = c.Wraparound
	return r
}

// ZerologLevel parses LOG_LEVEL, falling back to info.
func (c Config) ZerologLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// TokenTTL is the lifetime of a table token.
func (c Config) TokenTTL() time.Duration {
	if c.JWTExpiresHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.JWTExpiresHours) * time.Hour
}
