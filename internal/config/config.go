// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
		QuoteAll  bool   `mapstructure:"quote_all" yaml:"quote_all"`
	} `mapstructure:"csv" yaml:"csv"`

	Categorization struct {
		UncategorizedLabel string `mapstructure:"uncategorized_label" yaml:"uncategorized_label"`
		CaseSensitive      bool   `mapstructure:"case_sensitive" yaml:"case_sensitive"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Data struct {
		RulesFile        string `mapstructure:"rules_file" yaml:"rules_file"`
		TransactionsFile string `mapstructure:"transactions_file" yaml:"transactions_file"`
	} `mapstructure:"data" yaml:"data"`
}

// InitializeConfig loads configuration from defaults, an optional config file
// and EXTRATO_* environment variables, in that order of precedence.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.extrato-csv")
	v.AddConfigPath(".extrato-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("EXTRATO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Invalid config file is reported but not fatal, defaults still apply
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.quote_all", false)

	v.SetDefault("categorization.uncategorized_label", "Sem categoria")
	v.SetDefault("categorization.case_sensitive", false)

	v.SetDefault("data.rules_file", "rules.yaml")
	v.SetDefault("data.transactions_file", "transacoes.csv")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Categorization.UncategorizedLabel == "" {
		return fmt.Errorf("categorization.uncategorized_label must not be empty")
	}

	return nil
}
