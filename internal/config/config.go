// Package config loads per-binary configuration from config files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// EthereumConfig holds chain read configuration
type EthereumConfig struct {
	RPCURL            string `mapstructure:"rpc_url"`
	LedgerContract    string `mapstructure:"ledger_contract"`
	MulticallContract string `mapstructure:"multicall_contract"`
	StakingToken      string `mapstructure:"staking_token"`
	BatchSize         int    `mapstructure:"batch_size"`
	Workers           int    `mapstructure:"workers"`
}

// FarcasterConfig holds social-graph client configuration
type FarcasterConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	APIKey            string  `mapstructure:"api_key"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// PriceConfig holds price feed configuration
type PriceConfig struct {
	BaseURL string `mapstructure:"base_url"`
	CoinID  string `mapstructure:"coin_id"`
}

// LeaderboardConfig holds ranking configuration
type LeaderboardConfig struct {
	TopN      int           `mapstructure:"top_n"`
	Keyphrase string        `mapstructure:"keyphrase"`
	ChannelID string        `mapstructure:"channel_id"`
	CastLimit int           `mapstructure:"cast_limit"`
	Lookback  time.Duration `mapstructure:"lookback"`
}

// WebhookConfig holds webhook verification configuration
type WebhookConfig struct {
	// Secrets are tried in order until one validates, which allows
	// zero-downtime secret rotation
	Secrets []string `mapstructure:"secrets"`
}

// NotificationsConfig holds push notification configuration
type NotificationsConfig struct {
	AppURL          string  `mapstructure:"app_url"`
	MinSupporterUSD float64 `mapstructure:"min_supporter_usd"`
}

// NATSConfig holds the optional broker configuration
type NATSConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

// RefreshConfig holds refresher scheduling configuration
type RefreshConfig struct {
	// Schedule is a cron expression; empty runs a single cycle and exits
	Schedule string `mapstructure:"schedule"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Ethereum      EthereumConfig      `mapstructure:"ethereum"`
	Farcaster     FarcasterConfig     `mapstructure:"farcaster"`
	Price         PriceConfig         `mapstructure:"price"`
	Leaderboard   LeaderboardConfig   `mapstructure:"leaderboard"`
	Webhook       WebhookConfig       `mapstructure:"webhook"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	NATS          NATSConfig          `mapstructure:"nats"`
}

// RefresherConfig holds configuration for the refresher
type RefresherConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Ethereum    EthereumConfig    `mapstructure:"ethereum"`
	Farcaster   FarcasterConfig   `mapstructure:"farcaster"`
	Price       PriceConfig       `mapstructure:"price"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Refresh     RefreshConfig     `mapstructure:"refresh"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("notifications.min_supporter_usd", 10)
	v.SetDefault("nats.subject_prefix", "hs.lockups")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadRefresherConfig loads configuration for the refresher
func LoadRefresherConfig(configFile string, envPath string) (*RefresherConfig, error) {
	v := configureViper("refresher", configFile, envPath)

	setCommonDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config RefresherConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("ethereum.multicall_contract", "0xcA11bde05977b3631167028862bE2a173976CA11")
	v.SetDefault("ethereum.batch_size", 50)
	v.SetDefault("ethereum.workers", 8)
	v.SetDefault("farcaster.requests_per_second", 5)
	v.SetDefault("price.base_url", "https://api.coingecko.com")
	v.SetDefault("price.coin_id", "higher")
	v.SetDefault("leaderboard.top_n", 100)
	v.SetDefault("leaderboard.keyphrase", "started aiming higher and it worked out!")
	v.SetDefault("leaderboard.channel_id", "higher")
	v.SetDefault("leaderboard.cast_limit", 50)
	v.SetDefault("leaderboard.lookback", "720h")
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("HS_LEADERBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Required for viper to map env vars to config struct fields when no
// config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.ledger_contract",
		"ethereum.multicall_contract",
		"ethereum.staking_token",
		"ethereum.batch_size",
		"ethereum.workers",
		// Farcaster
		"farcaster.base_url",
		"farcaster.api_key",
		"farcaster.requests_per_second",
		// Price feed
		"price.base_url",
		"price.coin_id",
		// Leaderboard
		"leaderboard.top_n",
		"leaderboard.keyphrase",
		"leaderboard.channel_id",
		"leaderboard.cast_limit",
		"leaderboard.lookback",
		// Webhook
		"webhook.secrets",
		// Notifications
		"notifications.app_url",
		"notifications.min_supporter_usd",
		// NATS
		"nats.enabled",
		"nats.url",
		"nats.subject_prefix",
		// Refresh
		"refresh.schedule",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate)
	}
}
