// Package config resolves settings from defaults, an optional .env file,
// an optional config file, INTERLEAVE_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/interleave/internal/answer"
	"github.com/abhisek/interleave/internal/mastery"
	"github.com/abhisek/interleave/internal/session"
	"github.com/abhisek/interleave/internal/store"
)

// EnvPrefix is prepended to every key when reading the environment.
const EnvPrefix = "INTERLEAVE"

// Keys.
const (
	KeyDB               = "db"
	KeyDriver           = "driver"
	KeyUser             = "user"
	KeyMasteryThreshold = "mastery_threshold"
	KeyStrictness       = "strictness"
	KeyChoiceCount      = "choice_count"
	KeyRemindAt         = "remind_at"
	KeyLogLevel         = "log_level"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the resolved application configuration.
type Config struct {
	DB               string
	Driver           string
	User             string
	MasteryThreshold int
	Strictness       answer.Strictness
	ChoiceCount      int
	RemindAt         string
	LogLevel         slog.Level
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyDriver, store.DriverSQLite)
	v.SetDefault(KeyUser, "default")
	v.SetDefault(KeyMasteryThreshold, mastery.DefaultMasteryThreshold)
	v.SetDefault(KeyStrictness, string(answer.Strict))
	v.SetDefault(KeyChoiceCount, session.DefaultChoiceCount)
	v.SetDefault(KeyRemindAt, "08:00")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads environment variables from path if the file exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load reads the config file set on v (if any) and resolves a Config.
func Load(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	strictness, err := answer.ParseStrictness(v.GetString(KeyStrictness))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalid, v.GetString(KeyLogLevel))
	}

	cfg := &Config{
		DB:               v.GetString(KeyDB),
		Driver:           v.GetString(KeyDriver),
		User:             strings.TrimSpace(v.GetString(KeyUser)),
		MasteryThreshold: v.GetInt(KeyMasteryThreshold),
		Strictness:       strictness,
		ChoiceCount:      v.GetInt(KeyChoiceCount),
		RemindAt:         v.GetString(KeyRemindAt),
		LogLevel:         level,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field rules.
func (c *Config) Validate() error {
	switch c.Driver {
	case store.DriverSQLite:
	case store.DriverPostgres:
		if c.DB == "" {
			return fmt.Errorf("%w: driver postgres requires a db connection string", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: driver %q (want sqlite or postgres)", ErrInvalid, c.Driver)
	}
	if c.User == "" {
		return fmt.Errorf("%w: user must not be empty", ErrInvalid)
	}
	if c.MasteryThreshold < 1 {
		return fmt.Errorf("%w: mastery_threshold %d must be >= 1", ErrInvalid, c.MasteryThreshold)
	}
	if c.ChoiceCount < 2 || c.ChoiceCount > 10 {
		return fmt.Errorf("%w: choice_count %d must be between 2 and 10", ErrInvalid, c.ChoiceCount)
	}
	if _, err := time.Parse("15:04", c.RemindAt); err != nil {
		return fmt.Errorf("%w: remind_at %q must be HH:MM", ErrInvalid, c.RemindAt)
	}
	return nil
}

// DSN returns the database location, resolving the default SQLite path
// when none is configured.
func (c *Config) DSN() (string, error) {
	if c.DB != "" {
		return c.DB, nil
	}
	return store.DefaultDBPath()
}
