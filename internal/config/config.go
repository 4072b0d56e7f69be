package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	PaymentService PaymentServiceConfig `toml:"payment_service"`
	Booking        BookingConfig        `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PaymentServiceConfig настройки клиента платежного сервиса
type PaymentServiceConfig struct {
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"` // секунды
	Currency string `toml:"currency"`
}

// BookingConfig бизнес-настройки бронирований
type BookingConfig struct {
	HoldTTLMinutes      int `toml:"hold_ttl_minutes"`      // время жизни неоплаченной брони
	ReminderLeadMinutes int `toml:"reminder_lead_minutes"` // окно напоминаний до выдачи/возврата
	ExpireSweepSeconds  int `toml:"expire_sweep_seconds"`  // период фоновой уборки просроченных броней
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.PaymentService.Currency == "" {
		cfg.PaymentService.Currency = "RUB"
	}
	if cfg.Booking.HoldTTLMinutes == 0 {
		cfg.Booking.HoldTTLMinutes = 15
	}
	if cfg.Booking.ReminderLeadMinutes == 0 {
		cfg.Booking.ReminderLeadMinutes = 30
	}
	if cfg.Booking.ExpireSweepSeconds == 0 {
		cfg.Booking.ExpireSweepSeconds = 60
	}
}
