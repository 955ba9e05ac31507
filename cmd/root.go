package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vertext/internal/config"
	"github.com/zjrosen/vertext/internal/editor"
	"github.com/zjrosen/vertext/internal/log"
	"github.com/zjrosen/vertext/internal/storage"
	"github.com/zjrosen/vertext/internal/term"
	"github.com/zjrosen/vertext/internal/watcher"
)

const defaultConfigPath = ".vertext/config.yaml"

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:           "vertext [file]",
	Short:         "A small terminal text editor",
	Long:          `A small terminal text editor. Ctrl-S saves, Ctrl-Q quits.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vertext/config.yaml)")
	rootCmd.Flags().Bool("debug", false,
		"write a debug log (see log_file)")
	rootCmd.Flags().Int("tab-stop", config.Defaults().TabStop,
		"columns per tab stop")

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	_ = viper.BindPFlag("tab_stop", rootCmd.Flags().Lookup("tab-stop"))
}

func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("tab_stop", defaults.TabStop)
	v.SetDefault("quit_times", defaults.QuitTimes)
	v.SetDefault("message_timeout", defaults.MessageTimeout)
	v.SetDefault("watch", defaults.Watch)
	v.SetDefault("watch_debounce", defaults.WatchDebounce)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("debug", defaults.Debug)

	v.SetEnvPrefix("VERTEXT")
	v.AutomaticEnv()
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .vertext/config.yaml (current directory)
		// 2. ~/.config/vertext/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "vertext"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .vertext/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				viper.SetConfigFile(defaultConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runEditor(_ *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug {
		cleanup, err := log.Init(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()

		level, _ := log.ParseLevel(cfg.LogLevel)
		log.SetMinLevel(level)
		log.Info(log.CatConfig, "vertext starting", "config", viper.ConfigFileUsed(), "tab_stop", cfg.TabStop)
	}

	var filename string
	if len(args) > 0 {
		filename = args[0]
	}

	t, err := term.Open(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}

	err = edit(t, filename)

	_ = editor.ClearScreen(t)
	if restoreErr := t.Restore(); restoreErr != nil && err == nil {
		err = restoreErr
	}
	return err
}

// edit runs an editor session on t. The terminal is still in raw mode when
// it returns.
func edit(t *term.Terminal, filename string) error {
	opts := editor.Options{
		Config: cfg,
		Store:  storage.NewOS(),
	}

	if filename != "" && cfg.Watch {
		w, err := startWatcher(filename)
		if err != nil {
			log.ErrorErr(log.CatWatcher, "file watching disabled", err, "name", filename)
		} else {
			defer func() { _ = w.Stop() }()
			opts.Notifier = w
		}
	}

	ed, err := editor.New(t, opts)
	if err != nil {
		return err
	}
	if filename != "" {
		if err := ed.Open(filename); err != nil {
			return err
		}
	}

	// Raw mode turns Ctrl-C into a key, so only external signals end up here.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	err = ed.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info(log.CatTerm, "terminated by signal")
		return nil
	}
	return err
}

func startWatcher(filename string) (*watcher.Watcher, error) {
	w, err := watcher.New(watcherConfig(filename, cfg.WatchDebounce))
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}

// Execute runs the root command
// watcherConfig keeps the watcher's default debounce unless one is configured.
func watcherConfig(filename string, debounce time.Duration) watcher.Config {
	wc := watcher.DefaultConfig(filename)
	if debounce > 0 {
		wc.DebounceDur = debounce
	}
	return wc
}

func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
