package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lmsplatform/config"
	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/infrastructure/cache"
	"lmsplatform/internal/infrastructure/repository"
	"lmsplatform/internal/infrastructure/security"
	"lmsplatform/internal/middleware"
	"lmsplatform/internal/platform/logger"
	"lmsplatform/internal/platform/tracing"
	grpc_handler "lmsplatform/internal/transport/grpc"
	handlers "lmsplatform/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		appLog.Fatal("ACCESS_SECRET and REFRESH_SECRET must be set")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := tracing.Init(cfg.TracingEnabled)
	if err != nil {
		appLog.Fatal("Failed to init tracing", "error", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		appLog.Fatal("Failed to connect to DB", "error", err)
	}
	if err := repository.Migrate(db); err != nil {
		appLog.Fatal("Failed to migrate DB", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		appLog.Fatal("Failed to get DB handle", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLog.Fatal("Failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
	}
	appLog.Info("Connected to Redis", "addr", cfg.RedisAddr)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	tokenCache := cache.NewTokenCache(rdb)
	catalogCache := cache.NewCatalogCache(rdb, cfg.CatalogCacheTTL)
	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)

	authUC := usecase.NewAuthUseCase(userRepo, tokenCache, hasher, tokenManager, appLog)
	courseUC := usecase.NewCourseUseCase(courseRepo, catalogCache, appLog)
	chapterUC := usecase.NewChapterUseCase(courseRepo, chapterRepo, catalogCache, appLog)
	catalogUC := usecase.NewCatalogUseCase(userRepo, courseRepo, purchaseRepo, progressRepo, catalogCache, appLog)
	enrollmentUC := usecase.NewEnrollmentUseCase(courseRepo, chapterRepo, purchaseRepo, progressRepo, appLog)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authUC.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			appLog.Fatal("Failed to bootstrap administrator", "error", err)
		}
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:              authUC,
		Limiter:           middleware.NewRateLimiter(rdb, appLog),
		Log:               appLog,
		Origins:           cfg.AllowedOrigins,
		HealthPing:        sqlDB.PingContext,
		AuthHandler:       handlers.NewAuthHandler(authUC, cfg.IsProduction(), appLog),
		UserHandler:       handlers.NewUserHandler(authUC, appLog),
		CourseHandler:     handlers.NewCourseHandler(courseUC, cfg.Currency, appLog),
		ChapterHandler:    handlers.NewChapterHandler(chapterUC, appLog),
		CatalogHandler:    handlers.NewCatalogHandler(catalogUC, cfg.Currency, appLog),
		EnrollmentHandler: handlers.NewEnrollmentHandler(enrollmentUC, appLog),
	})

	httpServer := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	healthServer := grpc_handler.NewHealthServer(sqlDB.PingContext, appLog)
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		appLog.Fatal("Failed to listen", "addr", cfg.GRPCPort, "error", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go healthServer.Watch(ctx)

	go func() {
		appLog.Info("gRPC health server is running", "addr", cfg.GRPCPort)
		if err := healthServer.Server.Serve(lis); err != nil {
			appLog.Fatal("Failed to serve gRPC", "error", err)
		}
	}()

	go func() {
		appLog.Info("HTTP server is running", "addr", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to serve HTTP", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	appLog.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP shutdown failed", "error", err)
	}
	healthServer.Server.GracefulStop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLog.Error("Tracing shutdown failed", "error", err)
	}
	if err := rdb.Close(); err != nil {
		appLog.Error("Redis close failed", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		appLog.Error("DB close failed", "error", err)
	}
}
