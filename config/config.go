// ABOUTME: Configuration loading for StoneLedger
// ABOUTME: Reads stoneledger.yaml, .env and STONELEDGER_ environment variables via viper
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/harperreed/stoneledger/mapper"
	"github.com/harperreed/stoneledger/pipeline"
	"github.com/harperreed/stoneledger/sheets"
)

// Production sheet ids the dashboard was built against.
const (
	DefaultOrdersSheet   = "1W9mqlDCNvICWOrd78JR7OMgvleUDWzyM0QqymC2syck"
	DefaultContactsSheet = "1PXUsDE16nUx7FusxtsSKdIrtmDyFDnMy4x_V_QHYBQY"
)

type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Google   GoogleConfig   `mapstructure:"google"`
	Source   SourceConfig   `mapstructure:"source"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	// Path of the run log. Empty disables run recording.
	Path string `mapstructure:"path"`
}

type GoogleConfig struct {
	Credentials     string `mapstructure:"credentials"`
	CredentialsFile string `mapstructure:"credentials_file"`
	TokenFile       string `mapstructure:"token_file"`
	ClientID        string `mapstructure:"client_id"`
	ClientSecret    string `mapstructure:"client_secret"`
	ValueRender     string `mapstructure:"value_render"`
}

// SourceConfig picks where rows come from.
type SourceConfig struct {
	Kind   string `mapstructure:"kind"`
	CSVDir string `mapstructure:"csv_dir"`
}

type SheetsConfig struct {
	Orders   EntitySource `mapstructure:"orders"`
	Contacts EntitySource `mapstructure:"contacts"`
	Notes    EntitySource `mapstructure:"notes"`
}

// EntitySource locates one entity's rows. An empty SpreadsheetID leaves the
// entity unconfigured.
type EntitySource struct {
	SpreadsheetID string   `mapstructure:"spreadsheet_id"`
	Range         string   `mapstructure:"range"`
	DebugRange    string   `mapstructure:"debug_range"`
	Columns       []string `mapstructure:"columns"`
}

// DefaultDatabasePath is the run log location under the XDG data dir.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, "stoneledger", "runs.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("server.addr", ":8888")
	v.SetDefault("database.path", DefaultDatabasePath())

	v.SetDefault("google.credentials", "")
	v.SetDefault("google.credentials_file", "")
	v.SetDefault("google.token_file", sheets.DefaultTokenPath())
	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.value_render", sheets.RenderFormatted)

	v.SetDefault("source.kind", sheets.KindGoogle)
	v.SetDefault("source.csv_dir", "")

	v.SetDefault("sheets.orders.spreadsheet_id", DefaultOrdersSheet)
	v.SetDefault("sheets.orders.range", "Orders!A2:F500")
	v.SetDefault("sheets.orders.debug_range", "Orders!A1:F10")
	v.SetDefault("sheets.orders.columns", mapper.DefaultOrderColumns)

	v.SetDefault("sheets.contacts.spreadsheet_id", DefaultContactsSheet)
	v.SetDefault("sheets.contacts.range", "Final List!A2:G500")
	v.SetDefault("sheets.contacts.debug_range", "Final List!A1:G10")
	v.SetDefault("sheets.contacts.columns", mapper.DefaultContactColumns)

	v.SetDefault("sheets.notes.spreadsheet_id", "")
	v.SetDefault("sheets.notes.range", "Notes!A2:F500")
	v.SetDefault("sheets.notes.debug_range", "Notes!A1:F10")
	v.SetDefault("sheets.notes.columns", mapper.DefaultNoteColumns)
}

// Load reads configuration. path may be empty, in which case
// stoneledger.yaml is looked up in the working directory and the XDG config
// dir; a missing file is not an error. A .env file in the working directory
// is loaded first without overriding the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("stoneledger")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "stoneledger"))
	}

	v.SetEnvPrefix("STONELEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Well-known Google variables work without the prefix.
	_ = v.BindEnv("google.credentials", "STONELEDGER_GOOGLE_CREDENTIALS", "GOOGLE_CREDENTIALS")
	_ = v.BindEnv("google.client_id", "STONELEDGER_GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_ID")
	_ = v.BindEnv("google.client_secret", "STONELEDGER_GOOGLE_CLIENT_SECRET", "GOOGLE_CLIENT_SECRET")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Sources validates the per-entity settings and returns pipeline specs for
// every configured entity. Schema errors surface here, never per row.
func (c *Config) Sources() ([]pipeline.SourceSpec, error) {
	entries := []struct {
		entity mapper.Entity
		src    EntitySource
	}{
		{mapper.EntityOrders, c.Sheets.Orders},
		{mapper.EntityContacts, c.Sheets.Contacts},
		{mapper.EntityNotes, c.Sheets.Notes},
	}

	var specs []pipeline.SourceSpec
	for _, e := range entries {
		if strings.TrimSpace(e.src.SpreadsheetID) == "" {
			continue
		}
		if strings.TrimSpace(e.src.Range) == "" {
			return nil, fmt.Errorf("sheets.%s.range is required when spreadsheet_id is set", e.entity)
		}

		columns := e.src.Columns
		if len(columns) == 0 {
			columns = mapper.DefaultColumns(e.entity)
		}
		schema, err := mapper.ParseSchema(e.entity, columns)
		if err != nil {
			return nil, fmt.Errorf("invalid sheets.%s.columns: %w", e.entity, err)
		}

		specs = append(specs, pipeline.SourceSpec{
			Entity:        e.entity,
			SpreadsheetID: strings.TrimSpace(e.src.SpreadsheetID),
			Range:         e.src.Range,
			DebugRange:    e.src.DebugRange,
			Schema:        schema,
		})
	}
	return specs, nil
}

// SheetsOptions returns the row-source settings.
func (c *Config) SheetsOptions() sheets.Options {
	return sheets.Options{
		Kind: c.Source.Kind,
		Credentials: sheets.Credentials{
			JSON:         c.Google.Credentials,
			File:         c.Google.CredentialsFile,
			TokenFile:    c.Google.TokenFile,
			ClientID:     c.Google.ClientID,
			ClientSecret: c.Google.ClientSecret,
		},
		ValueRender: c.Google.ValueRender,
		CSVDir:      c.Source.CSVDir,
	}
}
