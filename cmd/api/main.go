package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealplan-generator/internal/api"
	"mealplan-generator/internal/core/ai/cache"
	"mealplan-generator/internal/infrastructure/config"
	"mealplan-generator/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（.env 由 LoadConfig 內部處理）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Int("planner_days", cfg.Planner.DaysPerWeek),
	)

	// 初始化快取後端
	responseCache, err := newResponseCache(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if responseCache != nil {
		defer responseCache.Close()
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, responseCache)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// newResponseCache 依設定選擇快取後端；快取停用時回傳 nil
func newResponseCache(cfg *config.Config) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	if cfg.Cache.Backend == "redis" {
		svc, err := cache.NewService(&cfg.Cache)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}

	manager := cache.NewManager(cfg)
	if manager == nil {
		return nil, fmt.Errorf("failed to initialize cache manager")
	}
	return manager, nil
}
