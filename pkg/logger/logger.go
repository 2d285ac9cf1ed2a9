// Package logger 提供统一的日志框架
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level 日志级别
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config 日志配置
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"` // json/console
	Output     string `yaml:"output" json:"output"` // stdout/stderr/file
	FilePath   string `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	TimeFormat string `yaml:"time_format,omitempty" json:"time_format,omitempty"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init 初始化日志器
func Init(cfg Config) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		zerolog.SetGlobalLevel(level)

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

// parseLevel 解析日志级别
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get 获取日志器
func Get() *zerolog.Logger {
	if logger.GetLevel() == zerolog.Disabled {
		Init(DefaultConfig())
	}
	return &logger
}

// WithContext 从上下文创建日志器
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()
	
	// 添加请求ID
	if reqID, ok := ctx.Value("request_id").(string); ok {
		l = l.With().Str("request_id", reqID).Logger()
	}
	
	// 添加组织ID
	if orgID, ok := ctx.Value("org_id").(string); ok {
		l = l.With().Str("org_id", orgID).Logger()
	}
	
	return &l
}

// Debug 记录调试日志
func Debug() *zerolog.Event {
	return Get().Debug()
}

// Info 记录信息日志
func Info() *zerolog.Event {
	return Get().Info()
}

// Warn 记录警告日志
func Warn() *zerolog.Event {
	return Get().Warn()
}

// Error 记录错误日志
func Error() *zerolog.Event {
	return Get().Error()
}

// Fatal 记录致命错误日志
func Fatal() *zerolog.Event {
	return Get().Fatal()
}

// WithError 添加错误信息
func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

// WithField 添加字段
func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

// WithFields 添加多个字段
func WithFields(fields map[string]interface{}) *zerolog.Logger {
	ctx := Get().With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	l := ctx.Logger()
	return &l
}

// ComplianceLogger 合规校验专用日志器
type ComplianceLogger struct {
	base *zerolog.Logger
}

// NewComplianceLogger 创建合规校验日志器
func NewComplianceLogger() *ComplianceLogger {
	l := Get().With().Str("component", "compliance").Logger()
	return &ComplianceLogger{base: &l}
}

// StartReport 记录报告生成开始
func (l *ComplianceLogger) StartReport(startDate, endDate string, employees, shifts int) {
	l.base.Info().
		Str("start_date", startDate).
		Str("end_date", endDate).
		Int("employees", employees).
		Int("shifts", shifts).
		Msg("开始生成合规报告")
}

// RuleViolation 记录严重违规
func (l *ComplianceLogger) RuleViolation(rule, details string) {
	l.base.Warn().
		Str("rule", rule).
		Str("details", details).
		Msg("合规违规")
}

// ReportComplete 记录报告生成完成
func (l *ComplianceLogger) ReportComplete(score float64, violations int, duration time.Duration) {
	l.base.Info().
		Float64("score", score).
		Int("violations", violations).
		Dur("duration", duration).
		Msg("合规报告生成完成")
}

// RotationLogger 值班轮值引擎专用日志器
type RotationLogger struct {
	base *zerolog.Logger
}

// NewRotationLogger 创建轮值引擎日志器
func NewRotationLogger() *RotationLogger {
	l := Get().With().Str("component", "rotation").Logger()
	return &RotationLogger{base: &l}
}

// StartRotation 记录轮值生成开始
func (l *RotationLogger) StartRotation(startDate, endDate string, pharmacists int) {
	l.base.Info().
		Str("start_date", startDate).
		Str("end_date", endDate).
		Int("pharmacists", pharmacists).
		Msg("开始生成值班轮值")
}

// Conflict 记录分配冲突
func (l *RotationLogger) Conflict(date, category, details string) {
	l.base.Warn().
		Str("date", date).
		Str("category", category).
		Str("details", details).
		Msg("值班分配冲突")
}

// UnassignedDuty 记录无法分配的值班
func (l *RotationLogger) UnassignedDuty(date, dutyType string) {
	l.base.Warn().
		Str("date", date).
		Str("duty_type", dutyType).
		Msg("值班未能分配")
}

// RotationComplete 记录轮值生成完成
func (l *RotationLogger) RotationComplete(assignments, conflicts int, duration time.Duration) {
	l.base.Info().
		Int("assignments", assignments).
		Int("conflicts", conflicts).
		Dur("duration", duration).
		Msg("值班轮值生成完成")
}

