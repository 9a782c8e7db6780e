package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vellum-cms/vellum-backend/pkg/logger"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	CORS      CORSConfig      `yaml:"cors"`
	Delivery  DeliveryConfig  `yaml:"delivery"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	EventLog  EventLogConfig  `yaml:"eventlog"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
}

// DatabaseConfig MySQL settings
type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// GetDSN builds the MySQL DSN
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig Redis settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig token settings, TTLs in seconds
type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"`
	RefreshIn int    `yaml:"refresh_in"`
}

// CORSConfig cross-origin settings, AllowOrigins is comma-separated
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// DeliveryConfig public delivery API settings. BaseDomain is the shared
// suffix tenant subdomains hang off of (one.<base_domain>).
type DeliveryConfig struct {
	BaseDomain string `yaml:"base_domain"`
}

// SchedulerConfig controls the scheduled action sweep
type SchedulerConfig struct {
	Enabled         bool `yaml:"enabled"`
	IntervalSeconds int  `yaml:"interval_seconds"`
	BatchSize       int  `yaml:"batch_size"`
}

// EventLogConfig ClickHouse lifecycle event log settings
type EventLogConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// RateLimitConfig delivery API rate limit settings
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
}

// Load reads configuration from a YAML file, then applies environment
// variable overrides. OS env always wins over file values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing file is fine, env vars carry the config
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (set JWT_SECRET or jwt.secret)")
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8082,
			Env:  "local",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            3306,
			User:            "vellum",
			Name:            "vellum",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: 3600,
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			DB:       0,
			PoolSize: 10,
		},
		JWT: JWTConfig{
			ExpiresIn: 900,
			RefreshIn: 604800,
		},
		Delivery: DeliveryConfig{
			// *.localhost resolves to loopback in modern browsers
			BaseDomain: "localhost",
		},
		Scheduler: SchedulerConfig{
			Enabled:         true,
			IntervalSeconds: 10,
			BatchSize:       50,
		},
		EventLog: EventLogConfig{
			Port:     9000,
			Database: "vellum",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 120,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Server.Env, "APP_ENV")
	setInt(&cfg.Server.Port, "SERVER_PORT")

	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")

	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.ExpiresIn, "JWT_EXPIRES_IN")
	setInt(&cfg.JWT.RefreshIn, "JWT_REFRESH_IN")

	setString(&cfg.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")

	setString(&cfg.Delivery.BaseDomain, "DELIVERY_BASE_DOMAIN")

	setBool(&cfg.Scheduler.Enabled, "SCHEDULER_ENABLED")
	setInt(&cfg.Scheduler.IntervalSeconds, "SCHEDULER_INTERVAL_SECONDS")
	setInt(&cfg.Scheduler.BatchSize, "SCHEDULER_BATCH_SIZE")

	setBool(&cfg.EventLog.Enabled, "EVENTLOG_ENABLED")
	setString(&cfg.EventLog.Host, "EVENTLOG_HOST")
	setInt(&cfg.EventLog.Port, "EVENTLOG_PORT")
	setString(&cfg.EventLog.Database, "EVENTLOG_DATABASE")
	setString(&cfg.EventLog.Username, "EVENTLOG_USERNAME")
	setString(&cfg.EventLog.Password, "EVENTLOG_PASSWORD")

	setBool(&cfg.RateLimit.Enabled, "RATE_LIMIT_ENABLED")
	setInt(&cfg.RateLimit.RequestsPerMinute, "RATE_LIMIT_RPM")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// IsDevelopment reports whether the server runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "local" || c.Server.Env == "development"
}

// LogResolved logs the effective configuration with secrets masked
func LogResolved(cfg *Config) {
	logger.Info("config: env=%s port=%d", cfg.Server.Env, cfg.Server.Port)
	logger.Info("config: mysql %s@%s:%d/%s (open=%d idle=%d lifetime=%ds)",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name,
		cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)
	logger.Info("config: redis %s:%d db=%d pool=%d",
		cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB, cfg.Redis.PoolSize)
	logger.Info("config: jwt secret=%s expires_in=%ds refresh_in=%ds",
		mask(cfg.JWT.Secret), cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)
	logger.Info("config: delivery base_domain=%s", cfg.Delivery.BaseDomain)
	logger.Info("config: scheduler enabled=%v interval=%ds batch=%d",
		cfg.Scheduler.Enabled, cfg.Scheduler.IntervalSeconds, cfg.Scheduler.BatchSize)
	logger.Info("config: eventlog enabled=%v host=%s:%d db=%s",
		cfg.EventLog.Enabled, cfg.EventLog.Host, cfg.EventLog.Port, cfg.EventLog.Database)
	logger.Info("config: rate_limit enabled=%v rpm=%d",
		cfg.RateLimit.Enabled, cfg.RateLimit.RequestsPerMinute)
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}
