package cache

import (
	"context"
	"fmt"

	"mealplan-generator/internal/infrastructure/config"
	"mealplan-generator/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Service Redis 快取服務，cache.backend=redis 時取代記憶體管理器
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService 創建 Redis 快取服務
func NewService(cfg *config.CacheConfig) (*Service, error) {
	if !cfg.Enabled {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取
func (s *Service) Get(ctx context.Context, prompt, imageData string) (string, error) {
	if !s.config.Enabled || s.client == nil {
		return "", common.ErrCacheDisabled
	}

	key := redisKey(prompt, imageData)

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", common.ErrCacheDisabled
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	return val, nil
}

// Set 設置快取
func (s *Service) Set(ctx context.Context, prompt, imageData, value string) error {
	if !s.config.Enabled || s.client == nil {
		return nil
	}

	key := redisKey(prompt, imageData)

	if err := s.client.Set(ctx, key, value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Close 關閉 Redis 連線
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// redisKey 生成快取鍵，圖片與提示詞都先雜湊避免超長鍵
func redisKey(prompt, imageData string) string {
	return fmt.Sprintf("ai:response:%s", generateKey(prompt, imageData))
}
