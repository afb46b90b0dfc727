package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/quiniela/internal/model"
)

// cliConfig holds the dashboard configuration.
type cliConfig struct {
	APIBase            string        `mapstructure:"api-base"`
	CurrentInterval    time.Duration `mapstructure:"current-interval"`
	FullInterval       time.Duration `mapstructure:"full-interval"`
	ReduceMotion       bool          `mapstructure:"reduce-motion"`
	RevealStep         time.Duration `mapstructure:"reveal-step"`
	RevealMax          time.Duration `mapstructure:"reveal-max"`
	DiagnosticsEnabled bool          `mapstructure:"diagnostics-enabled"`
	DiagnosticsAddr    string        `mapstructure:"diagnostics-addr"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`

	ConfigPath string `mapstructure:"-"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("QUINIELA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-base", model.DefaultAPIBase)
	v.SetDefault("current-interval", model.DefaultCurrentInterval)
	v.SetDefault("full-interval", model.DefaultFullInterval)
	v.SetDefault("reduce-motion", false)
	v.SetDefault("reveal-step", model.DefaultRevealStep)
	v.SetDefault("reveal-max", model.DefaultRevealMax)
	v.SetDefault("diagnostics-enabled", false)
	v.SetDefault("diagnostics-addr", model.DefaultDiagnosticsAddr)
	v.SetDefault("reverse-scroll-wheel", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "quiniela", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	} else {
		cfg.ConfigPath = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *cliConfig) validate() error {
	u, err := url.Parse(c.APIBase)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api-base %q: want an http(s) URL", c.APIBase)
	}
	if c.CurrentInterval <= 0 {
		return fmt.Errorf("invalid current-interval: %s", c.CurrentInterval)
	}
	if c.FullInterval <= 0 {
		return fmt.Errorf("invalid full-interval: %s", c.FullInterval)
	}
	if c.RevealStep < 0 || c.RevealMax < 0 {
		return fmt.Errorf("reveal-step and reveal-max must not be negative")
	}
	return nil
}
