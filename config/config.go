// Package config loads and saves the commute configuration file.
//
// The file is JSON and lives at ~/.commute.json unless another path is
// given:
//
//	{
//	  "from": ["Hilversum"],
//	  "to": ["Amsterdam Centraal", "Amsterdam Zuid"],
//	  "workdays_only": true,
//	  "catalog": {"NS": ["Hilversum Noord"]},
//	  "accounts": {"expenses": "Expenses:Commute", "funding": "Liabilities:OV-Chipkaart"}
//	}
//
// Every field is optional. A missing file is the same as an empty one.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/commute/invoice"
	"github.com/robinvdvleuten/commute/trip"
)

// DefaultFilename is the name of the configuration file in the home directory.
const DefaultFilename = ".commute.json"

const (
	defaultExpenses = "Expenses:Commute"
	defaultFunding  = "Liabilities:OV-Chipkaart"
	defaultCurrency = "EUR"
)

// ErrNoStations is returned by Stations when the home or the work side has
// no stations configured.
var ErrNoStations = errors.New("no home and work stations configured, run `commute init` or pass --from and --to")

// Accounts names the Beancount accounts used by the ledger export.
type Accounts struct {
	// Expenses is the parent account; the provider is appended per posting.
	Expenses string `json:"expenses,omitempty"`
	Funding  string `json:"funding,omitempty"`
}

// Config holds the persisted settings.
type Config struct {
	From         []string            `json:"from,omitempty"`
	To           []string            `json:"to,omitempty"`
	WorkdaysOnly *bool               `json:"workdays_only,omitempty"`
	Catalog      map[string][]string `json:"catalog,omitempty"`
	Accounts     Accounts            `json:"accounts,omitempty"`
	Currency     string              `json:"currency,omitempty"`
}

// DefaultPath returns ~/.commute.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(home, DefaultFilename), nil
}

// Load reads the configuration at path. An empty path means DefaultPath.
// A file that does not exist yields an empty configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes cfg to path as indented JSON, creating parent directories.
func Save(path string, cfg *Config) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the catalog providers.
func (c *Config) Validate() error {
	for provider := range c.Catalog {
		if _, err := trip.ParseProvider(provider); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}
	return nil
}

// Stations returns the station sets to filter on. Non-empty from or to
// override the configured lists of the same side.
func (c *Config) Stations(from, to []string) (trip.Stations, error) {
	if len(from) == 0 {
		from = c.From
	}
	if len(to) == 0 {
		to = c.To
	}

	from, to = clean(from), clean(to)
	if len(from) == 0 || len(to) == 0 {
		return trip.Stations{}, ErrNoStations
	}

	return trip.Stations{
		From: trip.NewStationSet(from...),
		To:   trip.NewStationSet(to...),
	}, nil
}

// Workdays reports whether weekend legs should be dropped. Defaults to true.
func (c *Config) Workdays() bool {
	return c.WorkdaysOnly == nil || *c.WorkdaysOnly
}

// ScannerOptions returns the options that add the configured catalog names
// to the invoice scanner.
func (c *Config) ScannerOptions() []invoice.Option {
	var opts []invoice.Option
	for name, stations := range c.Catalog {
		// Validate has already rejected unknown providers.
		provider, _ := trip.ParseProvider(name)
		opts = append(opts, invoice.WithStations(provider, stations...))
	}
	return opts
}

// ExpensesAccount returns the configured expenses parent account.
func (c *Config) ExpensesAccount() string {
	if c.Accounts.Expenses != "" {
		return c.Accounts.Expenses
	}
	return defaultExpenses
}

// FundingAccount returns the configured funding account.
func (c *Config) FundingAccount() string {
	if c.Accounts.Funding != "" {
		return c.Accounts.Funding
	}
	return defaultFunding
}

// CurrencyCode returns the configured currency, EUR by default.
func (c *Config) CurrencyCode() string {
	if c.Currency != "" {
		return strings.ToUpper(c.Currency)
	}
	return defaultCurrency
}

func clean(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
