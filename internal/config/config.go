package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on minimal container images.

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Airtable AirtableConfig
	MongoDB  MongoDBConfig
	Sheets   SheetsConfig
	Recap    RecapConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// AirtableConfig contains credentials and options for the Airtable REST API.
type AirtableConfig struct {
	APIKey    string
	BaseID    string
	TableName string
	BaseURL   string
	Timeout   time.Duration
}

// Configured reports whether credentials are present to build a client.
func (a AirtableConfig) Configured() bool {
	return a.APIKey != "" && a.BaseID != ""
}

// MongoDBConfig holds settings for the entry journal. An empty URI disables it.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether the journal should be connected.
func (m MongoDBConfig) Enabled() bool {
	return m.URI != ""
}

// SheetsConfig contains configuration required to export recaps to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	RecapRange      string
}

// Enabled reports whether recap export is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// RecapConfig holds scheduler-related settings.
type RecapConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getenvWithDefault("AIRTABLE_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AIRTABLE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("PORT", "5001"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Airtable: AirtableConfig{
			APIKey:    os.Getenv("AIRTABLE_API_KEY"),
			BaseID:    os.Getenv("AIRTABLE_BASE_ID"),
			TableName: getenvWithDefault("AIRTABLE_TABLE_NAME", "SAISIE DE LIVRES"),
			BaseURL:   getenvWithDefault("AIRTABLE_BASE_URL", "https://api.airtable.com/v0"),
			Timeout:   timeout,
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "saisie_livres"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_RECAP_ID"),
			RecapRange:      getenvWithDefault("GOOGLE_SHEET_RECAP_RANGE", "Recap!A:C"),
		},
		Recap: RecapConfig{
			CronSchedule: getenvWithDefault("RECAP_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Europe/Paris"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
// Airtable credentials are deliberately optional: without them the server
// still starts and every write reports an uninitialized connection.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}

	if strings.TrimSpace(c.Airtable.TableName) == "" {
		return errors.New("AIRTABLE_TABLE_NAME must not be empty")
	}

	if c.Airtable.BaseURL == "" {
		return errors.New("AIRTABLE_BASE_URL must not be empty")
	}

	if c.Airtable.Timeout < 0 {
		return errors.New("AIRTABLE_TIMEOUT must not be negative")
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.Sheets.Enabled() && c.Sheets.RecapRange == "" {
		return errors.New("GOOGLE_SHEET_RECAP_RANGE must not be empty")
	}

	if c.Recap.CronSchedule == "" {
		return errors.New("RECAP_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Recap.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Recap.Timezone, err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
