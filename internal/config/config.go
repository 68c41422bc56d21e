package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DateLayout       = "2006-01-02"
	DefaultStartDate = "2025-07-01"
	DefaultSheetName = "GA_All_From_July"
	DefaultRowLimit  = 100000
)

type Config struct {
	PropertyID      string `yaml:"property_id"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	SheetName       string `yaml:"sheet_name"`
	SummarySheet    string `yaml:"summary_sheet_name"`
	WriteSummary    bool   `yaml:"write_summary"`
	CredentialsFile string `yaml:"service_account_json"`

	FilterCampaign string `yaml:"filter_campaign"`
	FilterSource   string `yaml:"filter_source"`
	FilterMedium   string `yaml:"filter_medium"`

	// StartDate is fixed; an empty EndDate means "today" at run time.
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
	RowLimit  int64  `yaml:"row_limit"`

	Port        string        `yaml:"port"`
	HTTPTimeout time.Duration `yaml:"-"`
	LogLevel    slog.Level    `yaml:"-"`
}

func Default() Config {
	return Config{
		SheetName:    DefaultSheetName,
		WriteSummary: true,
		StartDate:    DefaultStartDate,
		RowLimit:     DefaultRowLimit,
		Port:         "8080",
		HTTPTimeout:  60 * time.Second,
		LogLevel:     slog.LevelInfo,
	}
}

func FromEnv() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// Load reads a YAML file on top of the defaults; environment variables win
// over values from the file. An empty path behaves like FromEnv.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setStr(&c.PropertyID, "GA4_PROPERTY_ID")
	setStr(&c.SpreadsheetID, "SPREADSHEET_ID")
	setStr(&c.SheetName, "SHEET_NAME")
	setStr(&c.SummarySheet, "SUMMARY_SHEET_NAME")
	setStr(&c.CredentialsFile, "SERVICE_ACCOUNT_JSON")
	setStr(&c.FilterCampaign, "FILTER_CAMPAIGN")
	setStr(&c.FilterSource, "FILTER_SOURCE")
	setStr(&c.FilterMedium, "FILTER_MEDIUM")
	setStr(&c.StartDate, "START_DATE")
	setStr(&c.EndDate, "END_DATE")
	setStr(&c.Port, "PORT")

	if v := os.Getenv("ROW_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.RowLimit = n
		}
	}
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			c.HTTPTimeout = d
		}
	}
	if os.Getenv("LOG_LEVEL") == "debug" {
		c.LogLevel = slog.LevelDebug
	}
}

// SummarySheetName is the sheet receiving the weekly summary, or "" when
// the summary is disabled.
func (c Config) SummarySheetName() string {
	if !c.WriteSummary {
		return ""
	}
	if c.SummarySheet != "" {
		return c.SummarySheet
	}
	return c.SheetName + "_Weekly"
}

func (c Config) DateRange(now time.Time) (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, strings.TrimSpace(c.StartDate))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date %q: %w", c.StartDate, err)
	}
	if c.EndDate == "" {
		y, m, d := now.Date()
		return start, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	end, err = time.Parse(DateLayout, strings.TrimSpace(c.EndDate))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date %q: %w", c.EndDate, err)
	}
	return start, end, nil
}

func (c Config) Validate(now time.Time) error {
	var errs []error
	required := []struct{ name, v string }{
		{"property_id", c.PropertyID},
		{"spreadsheet_id", c.SpreadsheetID},
		{"sheet_name", c.SheetName},
		{"service_account_json", c.CredentialsFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.v) == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}
	if c.WriteSummary && c.SummarySheetName() == c.SheetName {
		errs = append(errs, errors.New("summary sheet must differ from sheet_name"))
	}
	if c.RowLimit <= 0 {
		errs = append(errs, fmt.Errorf("row_limit must be positive, got %d", c.RowLimit))
	}
	if start, end, err := c.DateRange(now); err != nil {
		errs = append(errs, err)
	} else if start.After(end) {
		errs = append(errs, fmt.Errorf("start_date %s is after end date %s", start.Format(DateLayout), end.Format(DateLayout)))
	}
	return errors.Join(errs...)
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
