package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Поддерживаемые драйверы БД
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к БД
type DatabaseConfig struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`

	// Path файл SQLite, ":memory:" для базы в памяти
	Path string `toml:"path"`

	MaxOpenConns    int `toml:"max_open_conns"`
	MaxIdleConns    int `toml:"max_idle_conns"`
	ConnMaxLifetime int `toml:"conn_max_lifetime"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки определения пользователя
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	// TrustHeaders разрешает брать пользователя из X-User-ID/X-User-Role,
	// которые проставляет API gateway
	TrustHeaders bool `toml:"trust_headers"`
}

// RedisConfig настройки распределённых блокировок
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// LockTTL время жизни блокировки в миллисекундах
	LockTTL int `toml:"lock_ttl"`
}

// RabbitMQConfig настройки публикации событий бронирований
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// BookingConfig настройки бронирований
type BookingConfig struct {
	// LockTimeout максимальное ожидание блокировки ресурса в секундах
	LockTimeout int `toml:"lock_timeout"`
}

// Load загружает конфигурацию из TOML файла.
// Перед чтением подгружается .env из рабочей директории, если он есть.
func Load(path string) (*Config, error) {
	return LoadWithEnvFile(path, ".env")
}

// LoadWithEnvFile загружает конфигурацию из TOML файла и необязательного .env файла
func LoadWithEnvFile(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: failed to load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "resource-booking"
	}

	if c.Redis.LockTTL == 0 {
		c.Redis.LockTTL = 10000
	}

	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "bookings"
	}

	if c.Booking.LockTimeout == 0 {
		c.Booking.LockTimeout = 5
	}
}

// applyEnv переопределяет секреты переменными окружения
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("AUTH_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		c.RabbitMQ.URL = v
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("%w: database.host, database.dbname and database.user are required for postgres", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns must not exceed max_open_conns", ErrInvalidConfig)
	}

	if c.Auth.JWTSecret == "" && !c.Auth.TrustHeaders {
		return fmt.Errorf("%w: auth.jwt_secret is required unless auth.trust_headers is enabled", ErrInvalidConfig)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}

	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	return nil
}

// DSN возвращает строку подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		// Ждём освобождения файла вместо мгновенной ошибки SQLITE_BUSY
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", d.Path)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// IsSQLite returns true if the service stores data in SQLite
func (d DatabaseConfig) IsSQLite() bool {
	return d.Driver == DriverSQLite
}
