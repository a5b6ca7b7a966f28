package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interleave/internal/answer"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, "default", cfg.User)
	assert.Equal(t, 2, cfg.MasteryThreshold)
	assert.Equal(t, answer.Strict, cfg.Strictness)
	assert.Equal(t, 4, cfg.ChoiceCount)
	assert.Equal(t, "08:00", cfg.RemindAt)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("INTERLEAVE_USER", "alice")
	t.Setenv("INTERLEAVE_MASTERY_THRESHOLD", "3")
	t.Setenv("INTERLEAVE_STRICTNESS", "relaxed")
	t.Setenv("INTERLEAVE_LOG_LEVEL", "debug")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, 3, cfg.MasteryThreshold)
	assert.Equal(t, answer.Relaxed, cfg.Strictness)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "interleave.yaml")
	require.NoError(t, os.WriteFile(p, []byte("user: bob\nchoice_count: 5\nremind_at: \"19:30\"\n"), 0o644))

	v := New()
	v.SetConfigFile(p)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, 5, cfg.ChoiceCount)
	assert.Equal(t, "19:30", cfg.RemindAt)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "interleave.yaml")
	require.NoError(t, os.WriteFile(p, []byte("user: bob\n"), 0o644))
	t.Setenv("INTERLEAVE_USER", "carol")

	v := New()
	v.SetConfigFile(p)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "carol", cfg.User)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	v := New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load(v)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env")), "missing file is ignored")

	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("INTERLEAVE_REMIND_AT=07:15\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("INTERLEAVE_REMIND_AT") })

	require.NoError(t, LoadDotEnv(p))
	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "07:15", cfg.RemindAt)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"driver", "INTERLEAVE_DRIVER", "mysql"},
		{"postgres without dsn", "INTERLEAVE_DRIVER", "postgres"},
		{"threshold", "INTERLEAVE_MASTERY_THRESHOLD", "0"},
		{"strictness", "INTERLEAVE_STRICTNESS", "fuzzy"},
		{"choice count", "INTERLEAVE_CHOICE_COUNT", "1"},
		{"remind at", "INTERLEAVE_REMIND_AT", "8am"},
		{"log level", "INTERLEAVE_LOG_LEVEL", "chatty"},
		{"blank user", "INTERLEAVE_USER", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load(New())
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DB: "/tmp/x.db"}
	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", dsn)

	dir := t.TempDir()
	t.Setenv("INTERLEAVE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	dsn, err = (&Config{}).DSN()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "interleave", "interleave.db"), dsn)
}
