// Package config 提供配置管理
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	API        APIConfig        `yaml:"api"`
	Compliance ComplianceConfig `yaml:"compliance"`
	Rotation   RotationConfig   `yaml:"rotation"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN 返回数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Enabled 判断是否启用数据库支撑的接口
// 未配置 DB_HOST 时服务以纯计算模式运行
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// APIConfig API配置
type APIConfig struct {
	RateLimit int           `yaml:"rate_limit"`
	Timeout   time.Duration `yaml:"timeout"`
	CORS      CORSConfig    `yaml:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	Enabled bool     `yaml:"enabled"`
	Origins []string `yaml:"origins"`
}

// ComplianceConfig 合规校验配置（法定阈值缺省值）
type ComplianceConfig struct {
	MaxDailyHours       float64 `yaml:"max_daily_hours"`
	MaxWeeklyHours      float64 `yaml:"max_weekly_hours"`
	MinWeeklyRestHours  float64 `yaml:"min_weekly_rest_hours"`
	MinDailyRestHours   float64 `yaml:"min_daily_rest_hours"`
	BreakThresholdHours float64 `yaml:"break_threshold_hours"`
	MinBreakMinutes     int     `yaml:"min_break_minutes"`
	MinPharmacists      int     `yaml:"min_pharmacists"`
	CoverageStepMinutes int     `yaml:"coverage_step_minutes"`
}

// RotationConfig 值班轮值配置（值班时段缺省值）
type RotationConfig struct {
	NightEnabled   bool   `yaml:"night_enabled"`
	SundayEnabled  bool   `yaml:"sunday_enabled"`
	HolidayEnabled bool   `yaml:"holiday_enabled"`
	NightStart     string `yaml:"night_start"`
	NightEnd       string `yaml:"night_end"`
	SundayStart    string `yaml:"sunday_start"`
	SundayEnd      string `yaml:"sunday_end"`
	HolidayStart   string `yaml:"holiday_start"`
	HolidayEnd     string `yaml:"holiday_end"`
}

// MetricsConfig 监控配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "pharmaplanning"),
			Env:      getEnv("APP_ENV", "development"),
			Port:     getEnvInt("APP_PORT", 7012),
			LogLevel: getEnv("APP_LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "pharmaplanning"),
			User:            getEnv("DB_USER", "pharmaplanning"),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		API: APIConfig{
			RateLimit: getEnvInt("API_RATE_LIMIT", 100),
			Timeout:   getEnvDuration("API_TIMEOUT", 30*time.Second),
			CORS: CORSConfig{
				Enabled: getEnvBool("API_CORS_ENABLED", true),
				Origins: []string{"*"},
			},
		},
		Compliance: ComplianceConfig{
			MaxDailyHours:       getEnvFloat("COMPLIANCE_MAX_DAILY_HOURS", 10),
			MaxWeeklyHours:      getEnvFloat("COMPLIANCE_MAX_WEEKLY_HOURS", 48),
			MinWeeklyRestHours:  getEnvFloat("COMPLIANCE_MIN_WEEKLY_REST_HOURS", 35),
			MinDailyRestHours:   getEnvFloat("COMPLIANCE_MIN_DAILY_REST_HOURS", 11),
			BreakThresholdHours: getEnvFloat("COMPLIANCE_BREAK_THRESHOLD_HOURS", 6),
			MinBreakMinutes:     getEnvInt("COMPLIANCE_MIN_BREAK_MINUTES", 20),
			MinPharmacists:      getEnvInt("COMPLIANCE_MIN_PHARMACISTS", 1),
			CoverageStepMinutes: getEnvInt("COMPLIANCE_COVERAGE_STEP_MINUTES", 15),
		},
		Rotation: RotationConfig{
			NightEnabled:   getEnvBool("ROTATION_NIGHT_ENABLED", true),
			SundayEnabled:  getEnvBool("ROTATION_SUNDAY_ENABLED", true),
			HolidayEnabled: getEnvBool("ROTATION_HOLIDAY_ENABLED", true),
			NightStart:     getEnv("ROTATION_NIGHT_START", "20:00"),
			NightEnd:       getEnv("ROTATION_NIGHT_END", "08:00"),
			SundayStart:    getEnv("ROTATION_SUNDAY_START", "09:00"),
			SundayEnd:      getEnv("ROTATION_SUNDAY_END", "19:00"),
			HolidayStart:   getEnv("ROTATION_HOLIDAY_START", "09:00"),
			HolidayEnd:     getEnv("ROTATION_HOLIDAY_END", "19:00"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	return cfg, nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsTest 检查是否为测试环境
func (c *Config) IsTest() bool {
	return c.App.Env == "test"
}

// 辅助函数
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}