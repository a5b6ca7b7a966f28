package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/interleave/internal/config"
	"github.com/abhisek/interleave/internal/store"
)

var (
	cfg    *config.Config
	logger = slog.Default()

	// nowFunc is replaced in tests.
	nowFunc = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "interleave",
	Short: "Interleaved study sessions with Fibonacci revision scheduling",
	Long: "Interleave drills a deck of questions by cycling through a small window of items,\n" +
		"promoting each from multiple choice to free recall, and schedules revisions on\n" +
		"Fibonacci day intervals.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// flagKeys maps flag names to config keys. Flags only bind when the running
// command defines them.
var flagKeys = map[string]string{
	"db":         config.KeyDB,
	"driver":     config.KeyDriver,
	"user":       config.KeyUser,
	"log-level":  config.KeyLogLevel,
	"threshold":  config.KeyMasteryThreshold,
	"strictness": config.KeyStrictness,
	"choices":    config.KeyChoiceCount,
	"at":         config.KeyRemindAt,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Database file or connection string (overrides INTERLEAVE_DB)")
	pf.String("driver", "", "Database driver: sqlite or postgres")
	pf.StringP("user", "u", "", "Learner ID that owns the schedule")
	pf.String("config", "", "Path to a config file (yaml, json or toml)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings from .env, the config file, the environment
// and the command's flags, then installs the logger.
func loadConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	v := config.New()
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	}

	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c

	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
