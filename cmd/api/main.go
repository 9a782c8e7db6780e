package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vellum-cms/vellum-backend/internal/config"
	"github.com/vellum-cms/vellum-backend/internal/eventlog"
	"github.com/vellum-cms/vellum-backend/internal/handler"
	"github.com/vellum-cms/vellum-backend/internal/hook"
	"github.com/vellum-cms/vellum-backend/internal/middleware"
	"github.com/vellum-cms/vellum-backend/internal/migration"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"github.com/vellum-cms/vellum-backend/internal/routes"
	"github.com/vellum-cms/vellum-backend/internal/service"
	pkgcache "github.com/vellum-cms/vellum-backend/pkg/cache"
	"github.com/vellum-cms/vellum-backend/pkg/i18n"
	"github.com/vellum-cms/vellum-backend/pkg/jwt"
	pkglogger "github.com/vellum-cms/vellum-backend/pkg/logger"
	pkgredis "github.com/vellum-cms/vellum-backend/pkg/redis"

	_ "github.com/vellum-cms/vellum-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Vellum Backend API
// @version         2.0
// @description     Vellum CMS - Multi-tenant Content Publication Backend API
//
// @license.name    MIT
//
// @host            localhost:8082
// @BasePath        /api/v2
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	// 로거 초기화
	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	// MySQL 연결
	db, err := initDB(cfg)
	if err != nil {
		pkglogger.Info("Warning: Failed to connect to database: %v (continuing without DB)", err)
		db = nil
	} else {
		pkglogger.Info("Connected to MySQL")
		if err := migration.Run(db); err != nil {
			pkglogger.Info("Migration warning: %v", err)
		}
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			go func() {
				for range time.Tick(15 * time.Second) {
					middleware.SetDBConnectionsActive(float64(sqlDB.Stats().OpenConnections))
				}
			}()
		}
	}

	// Redis 연결
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Info("Warning: Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	// Cache Service
	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
		pkglogger.Info("Cache service initialized")
	}

	// JWT Manager
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiresIn,
		cfg.JWT.RefreshIn,
	)

	// 훅 매니저 + 라이프사이클 이벤트 버스
	hookLogger := hook.NewDefaultLogger("hook")
	hookManager := hook.NewHookManager(hookLogger)
	eventBus := hook.NewEventBus(hookLogger)

	// ClickHouse 라이프사이클 이벤트 로그 (선택)
	var eventHandler *eventlog.Handler
	var eventRecorder *eventlog.Recorder
	if cfg.EventLog.Enabled {
		chClient, chErr := eventlog.NewClient(eventlog.ClientConfig{
			Host:     cfg.EventLog.Host,
			Port:     cfg.EventLog.Port,
			Database: cfg.EventLog.Database,
			User:     cfg.EventLog.Username,
			Password: cfg.EventLog.Password,
		})
		if chErr != nil {
			pkglogger.Info("Warning: ClickHouse connection failed: %v (continuing without event log)", chErr)
		} else {
			eventRepo := eventlog.NewRepository(chClient)
			if err := eventRepo.EnsureSchema(context.Background()); err != nil {
				pkglogger.Info("Warning: event log schema init failed: %v", err)
			}
			eventRecorder = eventlog.NewRecorder(eventRepo, 100, 5*time.Second)
			eventRecorder.Attach(eventBus)
			eventRecorder.Start()
			defer eventRecorder.Stop()
			eventHandler = eventlog.NewHandler(eventRepo)
			pkglogger.Info("Connected to ClickHouse event log")
		}
	}

	// Gin 라우터 생성
	router := gin.Default()

	// CORS 설정
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}

	corsConfig := cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Space-Subdomain", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "X-Cache"},
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	// i18n Bundle
	i18nBundle := i18n.NewBundle(i18n.LocaleKo)
	for locale, msgs := range i18n.DefaultMessages() {
		i18nBundle.LoadMessages(locale, msgs)
	}
	if _, err := os.Stat("i18n"); err == nil {
		if err := i18nBundle.LoadDir("i18n"); err != nil {
			log.Printf("warning: i18n LoadDir failed: %v", err)
		}
	}
	_ = i18nBundle

	// Middleware
	router.Use(middleware.I18n())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check (DB/Redis 상태 포함)
	router.GET("/health", func(c *gin.Context) {
		dbStatus := "down"
		if db != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil && sqlDB.Ping() == nil {
				dbStatus = "up"
			}
		}
		redisStatus := "down"
		if redisClient != nil {
			if err := redisClient.Ping(c.Request.Context()).Err(); err == nil {
				redisStatus = "up"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "vellum-backend",
			"db":      dbStatus,
			"redis":   redisStatus,
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes (only if DB is connected)
	if db != nil {
		entryRepo := repository.NewEntryRepository(db)
		snapshotRepo := repository.NewSnapshotRepository(db)
		actionRepo := repository.NewScheduledActionRepository(db)
		ctypeRepo := repository.NewContentTypeRepository(db)
		spaceRepo := repository.NewSpaceRepository(db)
		userRepo := repository.NewUserRepository(db)

		// 권한 체크
		authorizer := service.NewDBAuthorizer(spaceRepo)

		// 엔트리 파사드 + 예약 스위퍼. 예약 실행은 파사드의 상태 전이를
		// 그대로 타야 하므로 상호 참조를 세터로 맺는다.
		entryService := service.NewEntryService(entryRepo, snapshotRepo, actionRepo, ctypeRepo, spaceRepo, authorizer)
		scheduler := service.NewSchedulerService(actionRepo, entryRepo, authorizer,
			cfg.Scheduler.IntervalSeconds, cfg.Scheduler.BatchSize)
		scheduler.SetExecutor(entryService)
		scheduler.SetHooks(hookManager, eventBus)
		entryService.SetScheduler(scheduler)
		entryService.SetHooks(hookManager, eventBus)

		ctypeService := service.NewContentTypeService(ctypeRepo, entryRepo, authorizer)
		spaceService := service.NewSpaceService(spaceRepo, authorizer)
		authService := service.NewAuthService(userRepo, jwtManager, hookManager)

		if cacheService != nil {
			entryService.SetCache(cacheService)
			ctypeService.SetCache(cacheService)
			spaceService.SetCache(cacheService)
		}

		authHandler := handler.NewAuthHandler(authService)
		spaceHandler := handler.NewSpaceHandler(spaceService)
		ctypeHandler := handler.NewContentTypeHandler(ctypeService)
		entryHandler := handler.NewEntryHandler(entryService)
		scheduleHandler := handler.NewScheduleHandler(entryService, scheduler)
		deliveryHandler := handler.NewDeliveryHandler(entryService, ctypeService, spaceService)

		routes.Setup(router, authHandler, spaceHandler, ctypeHandler, entryHandler,
			scheduleHandler, deliveryHandler, eventHandler,
			spaceRepo, spaceService, jwtManager, redisClient, cfg)

		// 예약 발행 스위퍼 시작
		if cfg.Scheduler.Enabled {
			scheduler.Start()
			defer scheduler.Stop()
			pkglogger.Info("Scheduler sweep started (interval=%ds, batch=%d)",
				cfg.Scheduler.IntervalSeconds, cfg.Scheduler.BatchSize)
		} else {
			pkglogger.Info("Scheduler sweep disabled")
		}
	} else {
		pkglogger.Info("Skipping API route setup (no DB connection)")
	}

	// 서버 시작
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s string, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("DSN 파싱 실패: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["time_zone"] = "'+00:00'"

	gormLogLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, err
	}

	db.Exec("SET NAMES utf8mb4")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
