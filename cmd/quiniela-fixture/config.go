package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/quiniela/internal/model"
)

type fixtureConfig struct {
	Addr        string `mapstructure:"addr"`
	FixturePath string `mapstructure:"fixture"`

	ConfigPath string `mapstructure:"-"`
}

func loadFixtureConfig(configPath string) (fixtureConfig, error) {
	var cfg fixtureConfig

	v := viper.New()
	v.SetEnvPrefix("QUINIELA_FIXTURE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("addr", model.DefaultFixtureAddr)
	v.SetDefault("fixture", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
				return cfg, err
			}
		} else {
			cfg.ConfigPath = v.ConfigFileUsed()
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
