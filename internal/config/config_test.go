package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "AIRTABLE_API_KEY", "AIRTABLE_BASE_ID", "AIRTABLE_TABLE_NAME",
		"AIRTABLE_BASE_URL", "AIRTABLE_TIMEOUT", "MONGODB_URI", "MONGODB_DB_NAME",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_RECAP_ID", "GOOGLE_SHEET_RECAP_RANGE",
		"RECAP_CRON_SCHEDULE", "TIMEZONE",
	} {
		// godotenv never overrides a variable that exists, even when empty.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "SAISIE DE LIVRES", cfg.Airtable.TableName)
	assert.Equal(t, "https://api.airtable.com/v0", cfg.Airtable.BaseURL)
	assert.Zero(t, cfg.Airtable.Timeout)
	assert.False(t, cfg.Airtable.Configured())
	assert.False(t, cfg.MongoDB.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, "0 20 * * *", cfg.Recap.CronSchedule)
	assert.Equal(t, "Europe/Paris", cfg.Recap.Timezone)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=8081\nAIRTABLE_API_KEY=key\nAIRTABLE_BASE_ID=app123\nAIRTABLE_TABLE_NAME=Stock\nAIRTABLE_TIMEOUT=3s\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "Stock", cfg.Airtable.TableName)
	assert.Equal(t, 3*time.Second, cfg.Airtable.Timeout)
	assert.True(t, cfg.Airtable.Configured())
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIRTABLE_TIMEOUT", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "AIRTABLE_TIMEOUT")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "5001"},
			Airtable: AirtableConfig{TableName: "SAISIE DE LIVRES", BaseURL: "https://api.airtable.com/v0"},
			Sheets:   SheetsConfig{RecapRange: "Recap!A:C"},
			Recap:    RecapConfig{CronSchedule: "0 20 * * *", Timezone: "Europe/Paris"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "PORT"},
		{name: "blank table", mutate: func(c *Config) { c.Airtable.TableName = "  " }, wantErr: "AIRTABLE_TABLE_NAME"},
		{name: "bad timezone", mutate: func(c *Config) { c.Recap.Timezone = "Mars/Olympus" }, wantErr: "TIMEZONE"},
		{name: "journal without db", mutate: func(c *Config) {
			c.MongoDB.URI = "mongodb://localhost:27017"
			c.MongoDB.DBName = ""
		}, wantErr: "MONGODB_DB_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
