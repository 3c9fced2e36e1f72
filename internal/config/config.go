package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	ProviderURL string `mapstructure:"provider_url"` // listings JSON endpoint; empty = sample data
	BoardURL    string `mapstructure:"board_url"`    // job board page for the browser scraper
	RedisURL    string `mapstructure:"redis_url"`    // optional cross-run listing cache

	PageSize        int    `mapstructure:"page_size"`
	SettleDelayMS   int    `mapstructure:"settle_delay_ms"`   // debounce for typed input
	DiscreteDelayMS int    `mapstructure:"discrete_delay_ms"` // delay for checkbox-style filters
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes"`
	HistoryCap      int    `mapstructure:"history_cap"`
	HistoryDedupHrs int    `mapstructure:"history_dedup_hours"`
	WatchSchedule   string `mapstructure:"watch_schedule"` // cron expression for saved-search alerts
}

var AppConfig *Config

// Initialize loads or creates the configuration file
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".jobscout")
	configFile := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("provider_url", "")
	viper.SetDefault("board_url", "")
	viper.SetDefault("redis_url", "")
	viper.SetDefault("page_size", 10)
	viper.SetDefault("settle_delay_ms", 400)
	viper.SetDefault("discrete_delay_ms", 100)
	viper.SetDefault("cache_ttl_minutes", 15)
	viper.SetDefault("history_cap", 100)
	viper.SetDefault("history_dedup_hours", 24)
	viper.SetDefault("watch_schedule", "@every 30m")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Jobscout Configuration

# Listings JSON endpoint. Leave empty to browse the built-in sample data.
provider_url: ""

# Job board page for the browser-automation scraper, used when provider_url
# is empty.
board_url: ""

# Optional redis URL for caching fetched listings across runs.
redis_url: ""

page_size: 10
settle_delay_ms: 400
discrete_delay_ms: 100
cache_ttl_minutes: 15
history_cap: 100
history_dedup_hours: 24

# Schedule for 'jobscout watch' (cron expression or @every duration).
watch_schedule: "@every 30m"
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".jobscout", "config.yaml")
}
