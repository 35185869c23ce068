package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type TinySqlConfig struct {
	AppName string `mapstructure:"app_name"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Shell struct {
		Prompt      string `mapstructure:"prompt"`
		Multiline   bool   `mapstructure:"multiline"`
		HistoryFile string `mapstructure:"history_file"`
		HistoryMax  int    `mapstructure:"history_max"`
	} `mapstructure:"shell"`

	Server struct {
		Addr  string `mapstructure:"addr"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"server"`
}

// LoadConfig reads the YAML file at path (skipped when path is empty), fills
// in defaults and applies TINYSQL_* environment overrides, e.g.
// TINYSQL_SERVER_ADDR for server.addr.
func LoadConfig(path string) (*TinySqlConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TINYSQL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg TinySqlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "tinysql")
	v.SetDefault("log.level", "warn")
	v.SetDefault("shell.prompt", "tinysql> ")
	v.SetDefault("shell.multiline", true)
	v.SetDefault("shell.history_file", defaultHistoryPath())
	v.SetDefault("shell.history_max", 2000)
	v.SetDefault("server.addr", "127.0.0.1:8866")
	v.SetDefault("server.debug", false)
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".tinysql_history"
	}
	return filepath.Join(home, ".tinysql_history")
}

// SlogLevel maps log.level onto a slog level; unknown names fall back to warn.
func (c *TinySqlConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger builds the text logger used by the binaries, writing to stderr.
func (c *TinySqlConfig) NewLogger() *slog.Logger {
	level := c.SlogLevel()
	if c.Server.Debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("app", c.AppName)
}
