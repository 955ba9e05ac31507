package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vertext/internal/config"
	"github.com/zjrosen/vertext/internal/watcher"
)

func TestSetDefaults_UnmarshalsToDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var got config.Config
	require.NoError(t, v.Unmarshal(&got))
	require.Equal(t, config.Defaults(), got)
}

func TestSetDefaults_EnvOverrides(t *testing.T) {
	t.Setenv("VERTEXT_TAB_STOP", "4")
	t.Setenv("VERTEXT_WATCH", "false")

	v := viper.New()
	setDefaults(v)

	var got config.Config
	require.NoError(t, v.Unmarshal(&got))
	require.Equal(t, 4, got.TabStop)
	require.False(t, got.Watch)
}

func TestConfigFile_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tab_stop: 2\nmessage_timeout: 3s\nquit_times: 0\n"), 0o600))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var got config.Config
	require.NoError(t, v.Unmarshal(&got))
	require.Equal(t, 2, got.TabStop)
	require.Equal(t, 3*time.Second, got.MessageTimeout)
	require.Equal(t, 0, got.QuitTimes)
	require.Equal(t, "debug.log", got.LogFile)
}

func TestRunEditor_InvalidConfig(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	cfg = config.Defaults()
	cfg.TabStop = 0

	err := runEditor(rootCmd, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	require.Error(t, rootCmd.Args(rootCmd, []string{"a", "b"}))
	require.NoError(t, rootCmd.Args(rootCmd, []string{"a"}))
}

func TestWatcherConfig(t *testing.T) {
	wc := watcherConfig("notes.txt", 2*time.Second)
	require.Equal(t, "notes.txt", wc.Path)
	require.Equal(t, 2*time.Second, wc.DebounceDur)

	wc = watcherConfig("notes.txt", 0)
	require.Equal(t, watcher.DefaultConfig("notes.txt"), wc)
}
