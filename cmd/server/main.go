package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitfantasy/nimo-sms/internal/config"
	"github.com/bitfantasy/nimo-sms/internal/middleware"
	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/handler"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting nimo-sms service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 迁移库存台账表
	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to auto-migrate tables", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	// 初始化 Redis（仪表盘统计缓存），连接失败时降级为直查
	rdb := initRedis(cfg.Redis)
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, cfg)
	handlers := handler.NewHandlers(services)

	// 初始管理员账号
	adminEmail := cfg.Admin.Email
	if adminEmail == "" {
		adminEmail = "admin@sms.com"
	}
	adminPassword := cfg.Admin.Password
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	if err := services.Auth.EnsureAdminUser(context.Background(), adminEmail, adminPassword); err != nil {
		zapLogger.Fatal("Failed to ensure admin user", zap.Error(err))
	}

	// 确定端口
	port := os.Getenv("SMS_PORT")
	if port == "" {
		if cfg.Server.Port > 0 {
			port = fmt.Sprintf("%d", cfg.Server.Port)
		} else {
			port = "8080"
		}
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// 健康检查
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "nimo-sms"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "nimo-sms"})
	})

	// 版本信息
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":    "nimo-sms",
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// SMS API v1
	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", handlers.Auth.Login)

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		authed.GET("/auth/me", handlers.Auth.Me)

		// 产品
		products := authed.Group("/products")
		{
			products.GET("", handlers.Product.List)
			products.POST("", handlers.Product.Create)
			products.GET("/:id", handlers.Product.Get)
		}

		// 客户
		customers := authed.Group("/customers")
		{
			customers.GET("", handlers.Customer.List)
			customers.POST("", handlers.Customer.Create)
			customers.PUT("/:id", handlers.Customer.Update)
			customers.DELETE("/:id", handlers.Customer.Delete)
		}

		// 入库单
		grns := authed.Group("/grn")
		{
			grns.GET("", handlers.GRN.List)
			grns.POST("", handlers.GRN.Create)
			grns.GET("/:id", handlers.GRN.Get)
		}

		// 销售发票
		sales := authed.Group("/sales")
		{
			sales.GET("", handlers.Sales.List)
			sales.POST("", handlers.Sales.Create)
			sales.GET("/invoice/:id", handlers.Sales.Get)
			sales.GET("/invoice/:id/pdf", handlers.Sales.DownloadPDF)
			sales.GET("/invoice/number/:number", handlers.Sales.GetByNumber)
		}

		// 退货贷项单
		creditNotes := authed.Group("/credit-notes")
		{
			creditNotes.GET("", handlers.CreditNote.List)
			creditNotes.POST("", handlers.CreditNote.Create)
			creditNotes.GET("/:id", handlers.CreditNote.Get)
			creditNotes.GET("/:id/pdf", handlers.CreditNote.DownloadPDF)
		}

		// 领用单
		issueOrders := authed.Group("/issue-orders")
		{
			issueOrders.GET("", handlers.IssueOrder.List)
			issueOrders.POST("", handlers.IssueOrder.Create)
			issueOrders.GET("/:id", handlers.IssueOrder.Get)
		}

		// 预警
		alerts := authed.Group("/alerts")
		{
			alerts.GET("", handlers.Alert.List)
			alerts.POST("/:id/resolve", handlers.Alert.Resolve)
		}

		// 仪表盘
		authed.GET("/dashboard/stats", handlers.Dashboard.Stats)
	}

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("SMS Server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down SMS server...")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("SMS Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}
