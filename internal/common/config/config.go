// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	API           APIConfig           `mapstructure:"api"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Voting        VotingConfig        `mapstructure:"voting"`
	Registration  RegistrationConfig  `mapstructure:"registration"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig holds settings for the election backend REST API.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds, per call
	AuthToken      string `mapstructure:"auth_token"`
}

// CacheConfig holds settings for the redis-backed read cache.
// Only public read-only records (elections, candidate rosters) ever go
// through this cache; vote status and receipts are always fetched live.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // milliseconds
}

// VotingConfig holds settings for the ballot and receipt flows.
type VotingConfig struct {
	AdminOverrideEnabled bool   `mapstructure:"admin_override_enabled"`
	ResultsPollInterval  int    `mapstructure:"results_poll_interval"` // milliseconds
	ResultsElectionID    int64  `mapstructure:"results_election_id"`   // kiosk election, 0 disables polling
	ReceiptPrefix        string `mapstructure:"receipt_prefix"`
}

// RegistrationConfig holds settings for account form validation.
type RegistrationConfig struct {
	AllowedEmailDomains []string `mapstructure:"allowed_email_domains"`
	PasswordMinLength   int      `mapstructure:"password_min_length"`
}

// ObservabilityConfig holds settings for the metrics endpoint.
type ObservabilityConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ListenAddr  string `mapstructure:"listen_addr"`
	ServiceName string `mapstructure:"service_name"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Validate checks the fields the client cannot run without.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Cache.Enabled && c.Cache.Address == "" {
		return fmt.Errorf("cache.address is required when cache.enabled is true")
	}
	return nil
}
