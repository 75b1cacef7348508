package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
}

func (config *DBConfig) setDefaults() {
	if config.ConnectionString == "" {
		config.ConnectionString = "./data/vacancy-bot.db"
	}
}

func (config DBConfig) validate() error {
	if strings.TrimSpace(config.ConnectionString) == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}
