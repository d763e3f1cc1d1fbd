package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillshare/internal/pkg/config"
	"skillshare/internal/pkg/middleware"
	"skillshare/internal/pkg/registry"
	"skillshare/internal/pkg/uploader"
	"skillshare/pkg/cache"
	"skillshare/pkg/database"
	"skillshare/pkg/logger"

	// 各业务模块通过 init 自注册
	_ "skillshare/internal/domain/admin"
	_ "skillshare/internal/domain/chat"
	_ "skillshare/internal/domain/common"
	_ "skillshare/internal/domain/monetization"
	_ "skillshare/internal/domain/notification"
	_ "skillshare/internal/domain/plan"
	_ "skillshare/internal/domain/post"
	_ "skillshare/internal/domain/progress"
	_ "skillshare/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	if err := logger.Init(config.GlobalConfig.App.Debug); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()
	cacheService := cache.NewRedisCache(rdb, "skillshare:")

	if err := uploader.InitUploader(); err != nil {
		logger.Log.Warn("object storage uploader not available, /upload will fail", zap.Error(err))
	}

	gin.SetMode(config.GlobalConfig.Server.Mode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.LoggerMiddleware(),
		middleware.CORSMiddleware(),
		middleware.RateLimitMiddleware(),
		middleware.MetricsMiddleware(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if config.GlobalConfig.App.Debug {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  rdb,
		Cache:  cacheService,
		Router: router,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("failed to init modules", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if monitor, err := database.NewPoolMonitor(db, time.Second*15); err != nil {
		logger.Log.Warn("failed to start db pool monitor", zap.Error(err))
	} else {
		monitor.Start(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + config.GlobalConfig.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: time.Second * 10,
	}

	go func() {
		logger.Log.Info("server starting",
			zap.String("port", config.GlobalConfig.Server.Port),
			zap.String("env", config.GlobalConfig.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*10)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
}
