package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/heatgate/schema"
)

// Default values for configuration.
const (
	DefaultRowLimit       = 10
	DefaultHistoryLimit   = 50
	MaxResultLimit        = 1000
	DefaultPrecision      = 1
	DefaultTimeLayout     = "2006-01-02 15:04"
	DefaultAddr           = ":8080"
	DefaultViewportWidth  = 1280.0
	DefaultContainerWidth = 1000.0
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// S3Config holds the settings for fetching evaluations from S3 or an S3-compatible store.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string // Please use env var as this is plaintext
	SecretKey string // Please use env var as this is plaintext
}

// LayoutRawInput holds the layout overrides from the YAML config file.
// Use float64 pointers for optional fields.
type LayoutRawInput struct {
	RowHeight      *float64        `mapstructure:"row_height"`
	XAxisHeight    *float64        `mapstructure:"x_axis_height"`
	LegendHeight   *float64        `mapstructure:"legend_height"`
	ShowMoreHeight *float64        `mapstructure:"show_more_height"`
	MinColumnWidth *float64        `mapstructure:"min_column_width"`
	Margins        *schema.Margins `mapstructure:"margins"`
}

// Config holds the runtime configuration.
// This struct remains the "final, validated" config.
type Config struct {
	RowLimit     int
	HistoryLimit int
	Project      string
	Stage        string
	Service      string
	Before       time.Time // zero means now
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)

	Expanded      bool
	Selected      string
	FailOnWarning bool
	TimeLayout    string
	Layout        schema.LayoutSettings

	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	Addr string
	S3   S3Config

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored cells in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Limit        int    `mapstructure:"limit"`
	HistoryLimit int    `mapstructure:"history-limit"`
	Project      string `mapstructure:"project"`
	Stage        string `mapstructure:"stage"`
	Service      string `mapstructure:"service"`
	Before       string `mapstructure:"before"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Precision    int    `mapstructure:"precision"`
	Width        int    `mapstructure:"width"`
	Backend      string `mapstructure:"db-backend"`
	DBConnect    string `mapstructure:"db-connect"`
	Emoji        string `mapstructure:"emoji"`
	Color        string `mapstructure:"color"`
	TimeLayout   string `mapstructure:"time-layout"`

	// --- Fields from heatmapCmd.Flags() ---
	Expanded bool   `mapstructure:"expanded"`
	Select   string `mapstructure:"select"`

	// --- Fields from checkCmd.Flags() ---
	FailOnWarning bool `mapstructure:"fail-on-warning"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Fields from importCmd.Flags() ---
	S3Endpoint  string `mapstructure:"s3-endpoint"`
	S3Region    string `mapstructure:"s3-region"`
	S3AccessKey string `mapstructure:"s3-access-key"`
	S3SecretKey string `mapstructure:"s3-secret-key"`

	// --- Layout overrides from config file ---
	Layout LayoutRawInput `mapstructure:"layout"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Filter returns the evaluation filter described by the config.
func (c *Config) Filter() schema.EvaluationFilter {
	return schema.EvaluationFilter{
		Project: c.Project,
		Stage:   c.Stage,
		Service: c.Service,
		Before:  c.Before,
		Limit:   c.HistoryLimit,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processBefore(cfg, input); err != nil {
		return err
	}
	if err := processLayout(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Project = strings.TrimSpace(input.Project)
	cfg.Stage = strings.TrimSpace(input.Stage)
	cfg.Service = strings.TrimSpace(input.Service)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Expanded = input.Expanded
	cfg.Selected = strings.TrimSpace(input.Select)
	cfg.FailOnWarning = input.FailOnWarning
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.S3 = S3Config{
		Endpoint:  input.S3Endpoint,
		Region:    input.S3Region,
		AccessKey: input.S3AccessKey,
		SecretKey: input.S3SecretKey,
	}

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Limits ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.RowLimit = input.Limit

	if input.HistoryLimit <= 0 || input.HistoryLimit > MaxResultLimit {
		return fmt.Errorf("history-limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.HistoryLimit)
	}
	cfg.HistoryLimit = input.HistoryLimit

	// --- 2. Precision and Output ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Time layout ---
	cfg.TimeLayout = input.TimeLayout
	if strings.TrimSpace(cfg.TimeLayout) == "" {
		cfg.TimeLayout = DefaultTimeLayout
	}

	// --- 4. Backend ---
	cfg.Backend = schema.DatabaseBackend(strings.ToLower(input.Backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.Backend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", input.Backend)
	}
	cfg.DBConnect = input.DBConnect
	return ValidateDatabaseConnectionString(cfg.Backend, cfg.DBConnect)
}

// processBefore parses the optional upper time bound.
func processBefore(cfg *Config, input *ConfigRawInput) error {
	cfg.Before = time.Time{}
	if strings.TrimSpace(input.Before) == "" {
		return nil
	}
	t, err := ParseBefore(input.Before, time.Now())
	if err != nil {
		return err
	}
	cfg.Before = t
	return nil
}

// processLayout merges layout overrides onto the defaults and validates the result.
func processLayout(cfg *Config, input *ConfigRawInput) error {
	settings := schema.DefaultLayoutSettings()
	raw := input.Layout

	overrides := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"row_height", raw.RowHeight, &settings.RowHeight},
		{"x_axis_height", raw.XAxisHeight, &settings.XAxisHeight},
		{"legend_height", raw.LegendHeight, &settings.LegendHeight},
		{"show_more_height", raw.ShowMoreHeight, &settings.ShowMoreHeight},
		{"min_column_width", raw.MinColumnWidth, &settings.MinColumnWidth},
	}
	for _, o := range overrides {
		if o.src == nil {
			continue
		}
		if *o.src < 0 {
			return fmt.Errorf("layout %s cannot be negative (received %.2f)", o.name, *o.src)
		}
		*o.dst = *o.src
	}
	if settings.RowHeight <= 0 {
		return fmt.Errorf("layout row_height must be greater than 0")
	}
	if settings.MinColumnWidth <= 0 {
		return fmt.Errorf("layout min_column_width must be greater than 0")
	}

	if raw.Margins != nil {
		m := *raw.Margins
		if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
			return fmt.Errorf("layout margins cannot be negative")
		}
		settings.Margins = m
	}

	cfg.Layout = settings
	return nil
}
