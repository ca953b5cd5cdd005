package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	pkglogger "github.com/damoang/rokn-storefront/pkg/logger"
)

// ErrInvalidConfig 설정 값 검증 실패
var ErrInvalidConfig = errors.New("invalid config")

// Config 애플리케이션 전체 설정
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	CORS       CORSConfig       `yaml:"cors"`
	Storefront StorefrontConfig `yaml:"storefront"`
	Advisor    AdvisorConfig    `yaml:"advisor"`
}

// ServerConfig HTTP 서버 설정
type ServerConfig struct {
	Port            int    `yaml:"port"`
	Mode            string `yaml:"mode"` // development | production
	ShutdownTimeout int    `yaml:"shutdown_timeout"`
}

// DatabaseConfig DB 연결 설정
type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // sqlite | mysql
	DSN             string `yaml:"dsn"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// RedisConfig Redis 설정
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// CORSConfig CORS 설정
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// StorefrontConfig 상점 도메인 설정
type StorefrontConfig struct {
	StoreName         string `yaml:"store_name"`
	Currency          string `yaml:"currency"`
	DeliveryFee       string `yaml:"delivery_fee"`
	PointsDivisor     int64  `yaml:"points_divisor"`
	WhatsAppNumber    string `yaml:"whatsapp_number"`
	DefaultLocale     string `yaml:"default_locale"`
	SeedCatalog       bool   `yaml:"seed_catalog"`
	MessagesDir       string `yaml:"messages_dir"`
	SessionIdleMinute int    `yaml:"session_idle_minutes"`
	CacheProducts     bool   `yaml:"cache_products"`
}

// AdvisorConfig AI 어드바이저(Gemini) 설정
type AdvisorConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RatePerMinute  int    `yaml:"rate_per_minute"`
}

// Load YAML 파일을 읽고 환경변수 오버라이드 및 기본값을 적용
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		pkglogger.Warn("config file %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 기본 설정
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8082, Mode: "development", ShutdownTimeout: 10},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "file:storefront.db?cache=shared",
			MaxIdleConns:    5,
			MaxOpenConns:    20,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{Host: "localhost", Port: 6379, PoolSize: 10},
		CORS:  CORSConfig{AllowOrigins: "*"},
		Storefront: StorefrontConfig{
			StoreName:         "ركن العمارية",
			Currency:          "SAR",
			DeliveryFee:       "15",
			PointsDivisor:     10,
			DefaultLocale:     "ar",
			SeedCatalog:       true,
			SessionIdleMinute: 120,
			CacheProducts:     true,
		},
		Advisor: AdvisorConfig{
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta",
			Model:          "gemini-2.5-flash",
			TimeoutSeconds: 30,
			RatePerMinute:  20,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Redis.Port = p
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Advisor.APIKey = v
	}
	if v := os.Getenv("STORE_WHATSAPP_NUMBER"); v != "" {
		cfg.Storefront.WhatsAppNumber = v
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		cfg.CORS.AllowOrigins = v
	}
}

// Validate 설정 값 검증
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("%w: unsupported database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	fee, err := c.Storefront.DeliveryFeeDecimal()
	if err != nil {
		return fmt.Errorf("%w: delivery_fee: %v", ErrInvalidConfig, err)
	}
	if fee.IsNegative() {
		return fmt.Errorf("%w: delivery_fee must not be negative", ErrInvalidConfig)
	}
	if c.Storefront.PointsDivisor <= 0 {
		return fmt.Errorf("%w: points_divisor must be positive", ErrInvalidConfig)
	}
	if c.Storefront.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidConfig)
	}
	return nil
}

// DeliveryFeeDecimal 배송비를 decimal로 변환
func (s StorefrontConfig) DeliveryFeeDecimal() (decimal.Decimal, error) {
	if strings.TrimSpace(s.DeliveryFee) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s.DeliveryFee)
}

// Timeout 어드바이저 HTTP 타임아웃
func (a AdvisorConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// GetDSN DB 드라이버별 DSN 반환
func (d DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	}
	return "file:storefront.db?cache=shared"
}

// IsDevelopment 개발 모드 여부
func (c *Config) IsDevelopment() bool {
	return c.Server.Mode == "" || c.Server.Mode == "development" || c.Server.Mode == "local"
}

// LogResolved 비밀값을 가린 채로 최종 설정을 기록
func LogResolved(cfg *Config) {
	pkglogger.GetLogger().Info().
		Int("port", cfg.Server.Port).
		Str("db_driver", cfg.Database.Driver).
		Bool("redis_enabled", cfg.Redis.Enabled).
		Str("currency", cfg.Storefront.Currency).
		Str("delivery_fee", cfg.Storefront.DeliveryFee).
		Int64("points_divisor", cfg.Storefront.PointsDivisor).
		Bool("whatsapp_configured", cfg.Storefront.WhatsAppNumber != "").
		Bool("advisor_configured", cfg.Advisor.APIKey != "").
		Str("advisor_model", cfg.Advisor.Model).
		Msg("config resolved")
}
