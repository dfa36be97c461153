package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"

	"github.com/vuxmai/salary-in-discord/internal/policy"
)

// Config holds all configuration for the application
type Config struct {
	DiscordBot DiscordBotConfig
	PostgreSQL PostgreSQLConfig
	Storage    StorageConfig
	Policy     PolicyConfig
	RateLimit  RateLimitConfig
}

// DiscordBotConfig holds Discord bot configuration
type DiscordBotConfig struct {
	Token  string
	Prefix string
	Locale string
}

// PostgreSQLConfig holds database configuration
type PostgreSQLConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	Schema       string
	PoolMaxConns int
}

// StorageConfig selects the ledger store backend
type StorageConfig struct {
	Driver string // "postgres" or "memory"
}

// PolicyConfig holds the per-command role allow-lists
type PolicyConfig struct {
	Roles PolicyRolesConfig
}

// PolicyRolesConfig lists the guild role IDs allowed per command kind
type PolicyRolesConfig struct {
	Credit []string
	Debit  []string
	Reset  []string
	Undo   []string
	View   []string
}

// RateLimitConfig holds the per-actor command rate limit settings
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.DiscordBot.Token == "" {
		return nil, fmt.Errorf("discord bot token is required")
	}

	if cfg.Storage.Driver == "postgres" && (cfg.PostgreSQL.Host == "" || cfg.PostgreSQL.DBName == "") {
		return nil, fmt.Errorf("database configuration is incomplete")
	}

	return &cfg, nil
}

// Initialize sets up viper with defaults and loads config
func Initialize() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Fatal error reading config file: %v", err)
	}

	log.Println("Configuration loaded successfully")
}

func setDefaults() {
	viper.SetDefault("DiscordBot.Prefix", "!")
	viper.SetDefault("DiscordBot.Locale", "en")

	viper.SetDefault("PostgreSQL.Host", "localhost")
	viper.SetDefault("PostgreSQL.Port", 5432)
	viper.SetDefault("PostgreSQL.User", "postgres")
	viper.SetDefault("PostgreSQL.DBName", "salary-db")
	viper.SetDefault("PostgreSQL.Schema", "public")
	viper.SetDefault("PostgreSQL.PoolMaxConns", 10)

	viper.SetDefault("Storage.Driver", "postgres")

	viper.SetDefault("RateLimit.Enabled", false)
	viper.SetDefault("RateLimit.RPS", 1.0)
	viper.SetDefault("RateLimit.Burst", 3)
}

// AllowedRoles converts the configured role lists into the policy's
// per-operation allow-list map.
func (c *Config) AllowedRoles() map[policy.Operation][]string {
	return map[policy.Operation][]string{
		policy.OpCredit: c.Policy.Roles.Credit,
		policy.OpDebit:  c.Policy.Roles.Debit,
		policy.OpReset:  c.Policy.Roles.Reset,
		policy.OpUndo:   c.Policy.Roles.Undo,
		policy.OpView:   c.Policy.Roles.View,
	}
}
