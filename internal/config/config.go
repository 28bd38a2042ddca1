package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-token-registry/internal/domain"
)

// Store drivers
const (
	STORE_DRIVER_MEMORY   = "memory"
	STORE_DRIVER_POSTGRES = "postgres"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	// Driver selects the store: "postgres" or "memory"
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	MaxAge         time.Duration `mapstructure:"max_age"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host               string   `mapstructure:"host"`
	Port               int      `mapstructure:"port"`
	ReadTimeout        int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout       int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout        int      `mapstructure:"idle_timeout"`  // in seconds
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RegistryConfig describes the hosted contracts
type RegistryConfig struct {
	Account               string   `mapstructure:"account"`
	DepositContract       string   `mapstructure:"deposit_contract"`
	IssuingContracts      []string `mapstructure:"issuing_contracts"`
	StorageMarketAccounts []string `mapstructure:"storage_market_accounts"`
	// WhitelistPath is a JSON file of contracts added to the whitelist at startup
	WhitelistPath string `mapstructure:"whitelist_path"`
}

// EmitterConfig holds the action emitter configuration
type EmitterConfig struct {
	// Enabled runs the emitter inside the API process
	Enabled        bool          `mapstructure:"enabled"`
	StartCursor    int64         `mapstructure:"start_cursor"`
	BatchSize      int           `mapstructure:"batch_size"`
	WorkerPoolSize int           `mapstructure:"pool_size"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	MaxPublishTime time.Duration `mapstructure:"max_publish_time"`
}

// APIConfig holds configuration for the registry API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Registry   RegistryConfig `mapstructure:"registry"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Emitter    EmitterConfig  `mapstructure:"emitter"`
}

// EventEmitterConfig holds configuration for the standalone action emitter
type EventEmitterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Emitter    EmitterConfig  `mapstructure:"emitter"`
}

// LoadAPIConfig loads configuration for the registry API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("registry-api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setNATSDefaults(v, "registry-api")
	setEmitterDefaults(v)
	v.SetDefault("registry.account", "registry")
	v.SetDefault("registry.deposit_contract", "eosio.token")
	v.SetDefault("registry.storage_market_accounts", []string{"eosio.ram", "eosio.ramfee"})

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadEventEmitterConfig loads configuration for the standalone action emitter
func LoadEventEmitterConfig(configFile string, envPath string) (*EventEmitterConfig, error) {
	v := configureViper("registry-event-emitter", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("database.driver", STORE_DRIVER_POSTGRES)
	setNATSDefaults(v, "registry-event-emitter")
	setEmitterDefaults(v)
	v.SetDefault("emitter.enabled", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config EventEmitterConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Database.Driver != STORE_DRIVER_POSTGRES {
		return nil, fmt.Errorf("%w: the standalone emitter needs the postgres store, got %q", domain.ErrValidation, config.Database.Driver)
	}

	return &config, nil
}

// Validate checks the hosted contract names and the store driver
func (c *APIConfig) Validate() error {
	if _, err := domain.ParseName(c.Registry.Account); err != nil {
		return fmt.Errorf("invalid registry.account: %w", err)
	}
	if _, err := domain.ParseName(c.Registry.DepositContract); err != nil {
		return fmt.Errorf("invalid registry.deposit_contract: %w", err)
	}
	if _, err := ParseNames(c.Registry.IssuingContracts); err != nil {
		return fmt.Errorf("invalid registry.issuing_contracts: %w", err)
	}
	if _, err := ParseNames(c.Registry.StorageMarketAccounts); err != nil {
		return fmt.Errorf("invalid registry.storage_market_accounts: %w", err)
	}

	switch c.Database.Driver {
	case STORE_DRIVER_MEMORY, STORE_DRIVER_POSTGRES:
	default:
		return fmt.Errorf("%w: unknown database.driver %q", domain.ErrValidation, c.Database.Driver)
	}

	if c.Emitter.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("%w: emitter.enabled needs nats.url", domain.ErrValidation)
	}

	return nil
}

// ParseNames parses a list of account names
func ParseNames(values []string) ([]domain.Name, error) {
	names := make([]domain.Name, 0, len(values))
	for _, value := range values {
		name, err := domain.ParseName(strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", STORE_DRIVER_POSTGRES)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setNATSDefaults(v *viper.Viper, service string) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "REGISTRY_ACTIONS")
	v.SetDefault("nats.connection_name", service)
}

func setEmitterDefaults(v *viper.Viper) {
	v.SetDefault("emitter.enabled", false)
	v.SetDefault("emitter.batch_size", 100)
	v.SetDefault("emitter.pool_size", 4)
	v.SetDefault("emitter.poll_interval", "1s")
	v.SetDefault("emitter.max_publish_time", "1m")
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/registry-api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.driver",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.max_age",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Registry
		"registry.account",
		"registry.deposit_contract",
		"registry.issuing_contracts",
		"registry.storage_market_accounts",
		"registry.whitelist_path",
		// Emitter
		"emitter.enabled",
		"emitter.start_cursor",
		"emitter.batch_size",
		"emitter.pool_size",
		"emitter.poll_interval",
		"emitter.max_publish_time",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
