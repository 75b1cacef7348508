package config

import (
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type ScraperConfig struct {
	Interval                time.Duration `mapstructure:"interval"`
	PageBudget              int           `mapstructure:"page_budget"`
	GroupConcurrency        int           `mapstructure:"group_concurrency"`
	CacheTTL                time.Duration `mapstructure:"cache_ttl"`
	SendDelay               time.Duration `mapstructure:"send_delay"`
	FreeSendCap             int           `mapstructure:"free_send_cap"`
	PremiumSendCap          int           `mapstructure:"premium_send_cap"`
	RecencyWindow           time.Duration `mapstructure:"recency_window"`
	Channels                []string      `mapstructure:"channels"`
	ChannelMessageLimit     int           `mapstructure:"channel_message_limit"`
	HhMaxRequestsPerSecond  float32       `mapstructure:"hh_max_requests_per_second"`
	VacancyExpirationInDays int           `mapstructure:"vacancy_expiration_days"`
}

func (config *ScraperConfig) setDefaults() {

	if config.Interval == 0 {
		config.Interval = time.Hour
	}
	if config.PageBudget == 0 {
		config.PageBudget = 2
	}
	if config.GroupConcurrency == 0 {
		config.GroupConcurrency = 5
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 5 * time.Minute
	}
	if config.SendDelay == 0 {
		config.SendDelay = 300 * time.Millisecond
	}
	if config.FreeSendCap == 0 {
		config.FreeSendCap = 3
	}
	if config.PremiumSendCap == 0 {
		config.PremiumSendCap = 5
	}
	if config.RecencyWindow == 0 {
		config.RecencyWindow = 7 * 24 * time.Hour
	}
	if config.ChannelMessageLimit == 0 {
		config.ChannelMessageLimit = 30
	}
	if config.HhMaxRequestsPerSecond == 0 {
		config.HhMaxRequestsPerSecond = 5
	}
	if config.VacancyExpirationInDays == 0 {
		config.VacancyExpirationInDays = 30
	}
}

func (config ScraperConfig) validate() error {

	if config.FreeSendCap > config.PremiumSendCap {
		return fmt.Errorf("free_send_cap must not exceed premium_send_cap")
	}

	return nil
}

func (config ScraperConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("scraper.interval", "SCRAPE_INTERVAL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("scraper.hh_max_requests_per_second", "HH_MAX_REQUESTS_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("scraper.vacancy_expiration_days", "VACANCY_EXPIRATION_DAYS"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
