package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML-файла
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Cache    CacheConfig    `toml:"cache"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AuthConfig настройки аутентификации мастера
type AuthConfig struct {
	MasterToken string `toml:"master_token"`
}

// CacheConfig настройки кэша доступных слотов
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// Load загружает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.Auth.MasterToken == "" {
		return fmt.Errorf("config: auth.master_token is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("config: metrics.path is required when metrics are enabled")
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("config: cache.addr is required when cache is enabled")
	}
	return nil
}
