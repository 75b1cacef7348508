package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type BotConfig struct {
	Token string `mapstructure:"token"`
}

func (config BotConfig) validate() error {

	if config.Token == "" {
		return fmt.Errorf("missing required variable: token")
	}

	return nil
}

func (config BotConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("bot.token", "TG_TOKEN")
}
