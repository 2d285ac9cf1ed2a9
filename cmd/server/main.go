// PharmaPlanning 合规校验与值班轮值服务
// 主程序入口

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/config"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/database"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/handler"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/metrics"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/repository"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/logger"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/rotation"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	// 限流配置
	globalRateLimiter = NewRateLimiter(float64(cfg.API.RateLimit))

	// 打印版本信息
	fmt.Printf("PharmaPlanning 合规与轮值引擎 v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	// 创建 HTTP 服务器
	mux := http.NewServeMux()

	// ========================================
	// 系统端点
	// ========================================

	// 健康检查端点
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pharmaplanning"}`))
	})

	// 版本信息端点
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	// ========================================
	// API v1 端点
	// ========================================

	// API 根路由
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "PharmaPlanning 合规与轮值 API v1",
			"endpoints": {
				"compliance": {
					"check": "POST /api/v1/compliance/check",
					"report": "POST /api/v1/compliance/report",
					"report_org": "POST /api/v1/compliance/report/org"
				},
				"rotation": {
					"generate": "POST /api/v1/rotation/generate",
					"generate_org": "POST /api/v1/rotation/generate/org",
					"stats": "POST /api/v1/rotation/stats"
				},
				"rules": {
					"library": "GET /api/v1/rules/library"
				}
			}
		}`))
	})

	// 快速合规检查 API
	mux.HandleFunc("/api/v1/compliance/check", handler.ComplianceCheckHandler)

	// 完整合规报告 API
	mux.HandleFunc("/api/v1/compliance/report", handler.ComplianceReportHandler)

	// 轮值生成 API
	mux.HandleFunc("/api/v1/rotation/generate", handler.RotationGenerateHandler)

	// 值班统计 API
	mux.HandleFunc("/api/v1/rotation/stats", handler.RotationStatsHandler)

	// 法定规则库 API
	mux.HandleFunc("/api/v1/rules/library", handler.RulesLibraryHandler)

	// ========================================
	// 数据库支撑的组织级 API（可选）
	// ========================================

	if cfg.Database.Enabled() {
		db, err := database.New(&cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("数据库初始化失败")
		}
		defer db.Close()

		statsCtx, stopStats := context.WithCancel(context.Background())
		defer stopStats()
		go db.PublishStats(statsCtx, 30*time.Second)

		orgHandler := handler.NewOrgHandler(
			repository.NewPharmacyRepository(db),
			repository.NewEmployeeRepository(db),
			repository.NewShiftRepository(db),
			repository.NewRotationRepository(db),
			complianceLimits(cfg),
			rotationDefaults(cfg),
		)

		mux.HandleFunc("/api/v1/compliance/report/org", orgHandler.ReportHandler)
		mux.HandleFunc("/api/v1/rotation/generate/org", orgHandler.RotationHandler)

		logger.Info().Str("host", cfg.Database.Host).Msg("组织级API已启用")
	} else {
		logger.Info().Msg("未配置 DB_HOST，服务以纯计算模式运行")
	}

	// ========================================
	// 监控端点
	// ========================================

	// Prometheus 指标端点
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	// ========================================
	// 中间件
	// ========================================

	// 中间件执行顺序：requestID -> rateLimit -> cors -> logging -> handler
	root := requestIDMiddleware(rateLimitMiddleware(corsMiddleware(loggingMiddleware(mux))))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 启动服务器（非阻塞）
	go func() {
		logger.Info().
			Int("port", cfg.App.Port).
			Str("version", Version).
			Str("url", fmt.Sprintf("http://localhost:%d", cfg.App.Port)).
			Str("api_docs", fmt.Sprintf("http://localhost:%d/api/v1/", cfg.App.Port)).
			Msg("服务器启动")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("服务器启动失败")
			os.Exit(1)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
		os.Exit(1)
	}

	logger.Info().Msg("服务器已关闭")
}

// complianceLimits 从配置构造法定阈值
func complianceLimits(cfg *config.Config) model.LegalLimits {
	return model.LegalLimits{
		MaxDailyHours:       cfg.Compliance.MaxDailyHours,
		MaxWeeklyHours:      cfg.Compliance.MaxWeeklyHours,
		MinWeeklyRestHours:  cfg.Compliance.MinWeeklyRestHours,
		MinDailyRestHours:   cfg.Compliance.MinDailyRestHours,
		BreakThresholdHours: cfg.Compliance.BreakThresholdHours,
		MinBreakMinutes:     cfg.Compliance.MinBreakMinutes,
		MinPharmacists:      cfg.Compliance.MinPharmacists,
		CoverageStepMinutes: cfg.Compliance.CoverageStepMinutes,
	}
}

// rotationDefaults 从配置构造轮值缺省配置（窗口与节假日由请求填充）
func rotationDefaults(cfg *config.Config) rotation.Config {
	return rotation.Config{
		NightEnabled:   cfg.Rotation.NightEnabled,
		SundayEnabled:  cfg.Rotation.SundayEnabled,
		HolidayEnabled: cfg.Rotation.HolidayEnabled,
		NightStart:     cfg.Rotation.NightStart,
		NightEnd:       cfg.Rotation.NightEnd,
		SundayStart:    cfg.Rotation.SundayStart,
		SundayEnd:      cfg.Rotation.SundayEnd,
		HolidayStart:   cfg.Rotation.HolidayStart,
		HolidayEnd:     cfg.Rotation.HolidayEnd,
	}
}

// requestIDMiddleware 请求ID追踪中间件
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 尝试从请求头获取 Request ID，没有则生成新的
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		// 设置响应头
		w.Header().Set("X-Request-ID", requestID)

		// 将 Request ID 存储到 context 中
		ctx := context.WithValue(r.Context(), "request_id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware 日志中间件
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// 获取 Request ID
		requestID, _ := r.Context().Value("request_id").(string)

		// 包装ResponseWriter以捕获状态码
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)

		logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", duration).
			Msg("请求处理")

		// 记录Prometheus指标
		metrics.RecordRequestMetrics(r.Method, r.URL.Path, rw.statusCode, duration)
	})
}

// responseWriter 包装ResponseWriter以捕获状态码
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RateLimiter 简单的令牌桶限流器
type RateLimiter struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // 每秒添加的令牌数
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建限流器
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	return &RateLimiter{
		tokens:     requestsPerSecond,
		maxTokens:  requestsPerSecond * 2, // 允许突发流量
		refillRate: requestsPerSecond,
		lastRefill: time.Now(),
	}
}

// Allow 检查是否允许请求
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

var globalRateLimiter = NewRateLimiter(100) // 默认值，启动时按配置覆盖

// rateLimitMiddleware 限流中间件
func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !globalRateLimiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   true,
				"code":    "RATE_LIMITED",
				"message": "请求过于频繁，请稍后重试",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware CORS中间件
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
