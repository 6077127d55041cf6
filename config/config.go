package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	EventStore EventStoreConfig `mapstructure:"eventstore"`
	Outbox     OutboxConfig     `mapstructure:"outbox"`
	Projection ProjectionConfig `mapstructure:"projection"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Migrate         bool          `mapstructure:"migrate"` // apply embedded schema on start
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type KafkaConfig struct {
	Brokers  string `mapstructure:"brokers"` // comma separated host:port list
	Topic    string `mapstructure:"topic"`
	GroupID  string `mapstructure:"group_id"`
	ClientID string `mapstructure:"client_id"`
}

// BrokerList splits Brokers into trimmed, non-empty addresses.
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type EventStoreConfig struct {
	SnapshotThreshold int           `mapstructure:"snapshot_threshold"` // 0 disables snapshots
	ConflictRetries   int           `mapstructure:"conflict_retries"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
	CommandCacheTTL   time.Duration `mapstructure:"command_cache_ttl"`
}

type OutboxConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
}

type ProjectionConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	MaxLag       int64         `mapstructure:"max_lag"` // lag above this reports degraded
	TotalsTTL    time.Duration `mapstructure:"totals_ttl"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ServiceName  string  `mapstructure:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"` // host:port
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: WLG_ (Wallet LedGer).
// Nested keys use underscore: WLG_DATABASE_HOST, WLG_KAFKA_BROKERS, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wallet_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.migrate", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "wallet.events")
	v.SetDefault("kafka.group_id", "wallet-projection")
	v.SetDefault("kafka.client_id", "wallet-ledger")
	v.SetDefault("eventstore.snapshot_threshold", 100)
	v.SetDefault("eventstore.conflict_retries", 3)
	v.SetDefault("eventstore.retry_backoff", "20ms")
	v.SetDefault("eventstore.command_cache_ttl", "24h")
	v.SetDefault("outbox.enabled", true)
	v.SetDefault("outbox.poll_interval", "500ms")
	v.SetDefault("outbox.batch_size", 100)
	v.SetDefault("projection.enabled", true)
	v.SetDefault("projection.max_attempts", 5)
	v.SetDefault("projection.retry_backoff", "200ms")
	v.SetDefault("projection.max_lag", 10000)
	v.SetDefault("projection.totals_ttl", "1080h")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "wallet-ledger")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "wallet-ledger")
	v.SetDefault("telemetry.otlp_endpoint", "localhost:4317")
	v.SetDefault("telemetry.sample_ratio", 1.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: WLG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("WLG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
