package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.False(t, config.CSV.QuoteAll)
	assert.Equal(t, "Sem categoria", config.Categorization.UncategorizedLabel)
	assert.False(t, config.Categorization.CaseSensitive)
	assert.Equal(t, "rules.yaml", config.Data.RulesFile)
	assert.Equal(t, "transacoes.csv", config.Data.TransactionsFile)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	t.Setenv("EXTRATO_LOG_LEVEL", "debug")
	t.Setenv("EXTRATO_LOG_FORMAT", "json")
	t.Setenv("EXTRATO_CSV_DELIMITER", ";")
	t.Setenv("EXTRATO_CATEGORIZATION_UNCATEGORIZED_LABEL", "Revisar")
	t.Setenv("EXTRATO_DATA_RULES_FILE", "minhas-regras.yaml")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "Revisar", config.Categorization.UncategorizedLabel)
	assert.Equal(t, "minhas-regras.yaml", config.Data.RulesFile)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: ";"
categorization:
  uncategorized_label: "Pendente"
data:
  transactions_file: "historico.csv"
`
	err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "Pendente", config.Categorization.UncategorizedLabel)
	assert.Equal(t, "historico.csv", config.Data.TransactionsFile)
	// Unset keys keep their defaults
	assert.Equal(t, "rules.yaml", config.Data.RulesFile)
}

func TestInitializeConfig_EnvOverridesConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
csv:
  delimiter: ";"
`
	err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)

	t.Setenv("EXTRATO_LOG_LEVEL", "error")

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level) // env var wins
	assert.Equal(t, ";", config.CSV.Delimiter) // config file value
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name: "invalid log level",
			modifyConfig: func(c *Config) {
				c.Log.Level = "invalid"
			},
			expectError: "invalid log level",
		},
		{
			name: "invalid log format",
			modifyConfig: func(c *Config) {
				c.Log.Format = "invalid"
			},
			expectError: "invalid log format",
		},
		{
			name: "multi-character delimiter",
			modifyConfig: func(c *Config) {
				c.CSV.Delimiter = "abc"
			},
			expectError: "single character",
		},
		{
			name: "empty uncategorized label",
			modifyConfig: func(c *Config) {
				c.Categorization.UncategorizedLabel = ""
			},
			expectError: "uncategorized_label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			config.Log.Level = "info"
			config.Log.Format = "text"
			config.CSV.Delimiter = ","
			config.Categorization.UncategorizedLabel = "Sem categoria"

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"EXTRATO_LOG_LEVEL",
		"EXTRATO_LOG_FORMAT",
		"EXTRATO_CSV_DELIMITER",
		"EXTRATO_CSV_QUOTE_ALL",
		"EXTRATO_CATEGORIZATION_UNCATEGORIZED_LABEL",
		"EXTRATO_CATEGORIZATION_CASE_SENSITIVE",
		"EXTRATO_DATA_RULES_FILE",
		"EXTRATO_DATA_TRANSACTIONS_FILE",
	}
	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
