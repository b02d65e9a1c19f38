package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the Azure identifiers, so tenant
// details need not live in a checked-in file.
const (
	EnvTenantDomain          = "DASHBOARD_TENANT_DOMAIN"
	EnvPrimarySubscription   = "DASHBOARD_PRIMARY_SUBSCRIPTION"
	EnvSecondarySubscription = "DASHBOARD_SECONDARY_SUBSCRIPTION"
)

// SubscriptionsConfig holds the Azure subscriptions used in portal links.
type SubscriptionsConfig struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"` // Data Factory / HCM resources
}

// SettingsConfig describes where the section list comes from.
type SettingsConfig struct {
	File    string        `yaml:"file"`    // local settings file, served at Path
	URL     string        `yaml:"url"`     // base URL to fetch Path from instead of File
	Path    string        `yaml:"path"`    // well-known relative path, e.g. /settings.csv
	Format  string        `yaml:"format"`  // "csv" or "table"; guessed from the file name if empty
	Watch   bool          `yaml:"watch"`   // reload when File changes
	Timeout time.Duration `yaml:"timeout"` // HTTP fetch timeout
}

// Config holds all configuration (CLI flags + config file + environment).
type Config struct {
	Listen        string              `yaml:"listen"`
	Dev           bool                `yaml:"-"`
	LogLevel      string              `yaml:"log_level"`
	HistoryLimit  int                 `yaml:"history_limit"`
	TenantDomain  string              `yaml:"tenant_domain"`
	Subscriptions SubscriptionsConfig `yaml:"subscriptions"`
	Settings      SettingsConfig      `yaml:"settings"`

	// internal: path to config file (from CLI flag)
	configFile string
	flags      *pflag.FlagSet
}

// Parse reads CLI flags, then overlays config file values and environment
// variables. CLI flags take precedence over the config file; environment
// variables override the Azure identifiers from either.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	fs := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	fs.StringVar(&c.configFile, "config", "", "Path to config file (YAML)")
	fs.StringVar(&c.Listen, "listen", "", "HTTP listen address")
	fs.BoolVar(&c.Dev, "dev", false, "Dev mode (proxy frontend to a local dev server)")
	fs.StringVar(&c.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&c.Settings.File, "settings-file", "", "Local settings file")
	fs.StringVar(&c.Settings.URL, "settings-url", "", "Base URL to fetch the settings document from")
	fs.StringVar(&c.Settings.Format, "settings-format", "", "Settings format: csv or table")
	fs.BoolVar(&c.Settings.Watch, "watch", false, "Reload when the settings file changes")
	fs.StringVar(&c.TenantDomain, "tenant-domain", "", "Azure AD tenant domain for portal links")
	c.flags = fs

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if c.configFile != "" {
		if err := c.loadFile(c.configFile); err != nil {
			return nil, err
		}
	}
	c.applyEnv()
	c.applyDefaults()
	return c, nil
}

// loadFile reads a YAML config file. Values from the file are only applied
// if the corresponding CLI flag was not explicitly set.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	overlay := func(dst *string, flag, v string) {
		if !c.flags.Changed(flag) && v != "" {
			*dst = v
		}
	}
	overlay(&c.Listen, "listen", file.Listen)
	overlay(&c.LogLevel, "log-level", file.LogLevel)
	overlay(&c.TenantDomain, "tenant-domain", file.TenantDomain)
	overlay(&c.Settings.File, "settings-file", file.Settings.File)
	overlay(&c.Settings.URL, "settings-url", file.Settings.URL)
	overlay(&c.Settings.Format, "settings-format", file.Settings.Format)
	if !c.flags.Changed("watch") && file.Settings.Watch {
		c.Settings.Watch = true
	}

	// File-only settings
	c.Settings.Path = file.Settings.Path
	c.Settings.Timeout = file.Settings.Timeout
	c.HistoryLimit = file.HistoryLimit
	c.Subscriptions = file.Subscriptions

	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvTenantDomain); v != "" {
		c.TenantDomain = v
	}
	if v := os.Getenv(EnvPrimarySubscription); v != "" {
		c.Subscriptions.Primary = v
	}
	if v := os.Getenv(EnvSecondarySubscription); v != "" {
		c.Subscriptions.Secondary = v
	}
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Settings.Path == "" {
		c.Settings.Path = "/settings.csv"
		if strings.EqualFold(c.Settings.Format, "table") {
			c.Settings.Path = "/settings.txt"
		}
	}
	if !strings.HasPrefix(c.Settings.Path, "/") {
		c.Settings.Path = "/" + c.Settings.Path
	}
	if c.Settings.File == "" && c.Settings.URL == "" {
		c.Settings.File = strings.TrimPrefix(c.Settings.Path, "/")
	}
	if c.Settings.Timeout <= 0 {
		c.Settings.Timeout = 10 * time.Second
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 50
	}
	if c.Subscriptions.Secondary == "" {
		c.Subscriptions.Secondary = c.Subscriptions.Primary
	}
}

// Validate reports settings that would make every load fail.
func (c *Config) Validate() error {
	if c.Settings.URL != "" && !strings.HasPrefix(c.Settings.URL, "http://") && !strings.HasPrefix(c.Settings.URL, "https://") {
		return fmt.Errorf("settings url %q must be http or https", c.Settings.URL)
	}
	if c.Settings.Watch && c.Settings.File == "" {
		return fmt.Errorf("watch requires a local settings file")
	}
	return nil
}
