package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/damoang/rokn-storefront/docs"
	"github.com/damoang/rokn-storefront/internal/config"
	"github.com/damoang/rokn-storefront/internal/database"
	"github.com/damoang/rokn-storefront/internal/middleware"
	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront"
	pkglogger "github.com/damoang/rokn-storefront/pkg/logger"
	pkgredis "github.com/damoang/rokn-storefront/pkg/redis"
)

// @title           Rokn Storefront API
// @version         1.0
// @description     Frozen-foods storefront catalog, cart and pricing engine
//
// @license.name    MIT
//
// @host            localhost:8082
// @BasePath        /api/v1

const apiBasePath = "/api/v1"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles, dotenvErr := config.LoadDotEnv(".")

	// 로거 초기화
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)
	if dotenvErr != nil {
		log.Fatalf("Failed to load env files: %v", dotenvErr)
	}

	// 설정 로드
	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// DB 연결
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}
	db, err := database.Open(cfg.Database, logLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to %s", cfg.Database.Driver)

	// Redis 연결 (선택)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(pkgredis.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
		}
	}

	// 플러그인
	pluginManager := plugin.NewManager(db, redisClient, plugin.NewLogger("plugin"))
	if err := pluginManager.RegisterBuiltIn(storefront.New(storefront.Options{
		Storefront:   cfg.Storefront,
		Advisor:      cfg.Advisor,
		AllowOrigins: cfg.CORS.AllowOrigins,
	})); err != nil {
		log.Fatalf("Failed to register plugin: %v", err)
	}
	if err := pluginManager.EnableAll(apiBasePath); err != nil {
		log.Fatalf("Failed to enable plugins: %v", err)
	}

	// DB 커넥션 수 메트릭
	pluginManager.Scheduler().Register("core", "db-stats", 15*time.Second, func(context.Context) error {
		n, err := database.OpenConnections(db)
		if err != nil {
			return err
		}
		middleware.SetDBConnectionsOpen(float64(n))
		return nil
	})
	pluginManager.Scheduler().Start()

	router := newRouter(cfg, pluginManager)

	// 서버 시작
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		pkglogger.Info("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
			"plugins": func(context.Context) error {
				pluginManager.Scheduler().Stop()
				return pluginManager.ShutdownAll()
			},
		},
	)

	exitCode := <-wait

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	pkglogger.Info("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// newRouter 공통 미들웨어와 플러그인 라우트를 등록한 엔진
func newRouter(cfg *config.Config, pluginManager *plugin.Manager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS 설정
	allowOrigins := splitAndTrim(cfg.CORS.AllowOrigins, ",")
	corsConfig := cors.Config{
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Accept-Language", "X-Request-ID", "X-Session-ID"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders: []string{"X-Request-ID", "X-Session-ID", "X-RateLimit-Remaining", "X-Cache"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		plugins := pluginManager.Health()
		status, code := "ok", http.StatusOK
		for _, h := range plugins {
			if h.Status == "unhealthy" {
				status, code = "degraded", http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": "rokn-storefront",
			"plugins": plugins,
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	if cfg.IsDevelopment() {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := router.Group(apiBasePath)
	api.Use(middleware.Session(!cfg.IsDevelopment()))
	api.Use(middleware.I18n())
	pluginManager.RegisterRoutes(api)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s string, delimiter string) []string {
	var out []string
	for _, part := range strings.Split(s, delimiter) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

