package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"mealplan-generator/internal/core/ai/cache"
	"mealplan-generator/internal/core/image"
	openrouter "mealplan-generator/internal/core/service"
	"mealplan-generator/internal/infrastructure/config"
	"mealplan-generator/internal/pkg/common"
)

// Response AI 回應結構
type Response struct {
	Content string
}

// Service AI 服務，統一快取查詢、圖片前處理與 OpenRouter 呼叫
type Service struct {
	config      *config.Config
	openRouter  *openrouter.OpenRouterService
	cache       cache.Cache
	imageSvc    *image.Service
	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

// NewService 創建 AI 服務。responseCache 可為 nil（快取停用時）。
func NewService(cfg *config.Config, responseCache cache.Cache) (*Service, error) {
	openRouter := openrouter.NewOpenRouterService(cfg)
	imageSvc := image.NewService(cfg.Image.MaxSizeBytes)

	return &Service{
		config:      cfg,
		openRouter:  openRouter,
		cache:       responseCache,
		imageSvc:    imageSvc,
		minInterval: 100 * time.Millisecond,
	}, nil
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string, imageData string) (*Response, error) {
	s.pace()

	// 統一 prompt 格式，去除多餘空白與換行，確保快取 key 一致
	prompt = strings.TrimSpace(prompt)
	prompt = strings.Join(strings.Fields(prompt), " ")

	var processedImageData string
	if imageData != "" {
		var err error
		processedImageData, err = s.imageSvc.ProcessImage(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to process image: %w", err)
		}
	}

	// 檢查快取
	if s.config.Cache.Enabled && s.cache != nil {
		if val, err := s.cache.Get(ctx, prompt, processedImageData); err == nil && val != "" {
			return &Response{Content: val}, nil
		}
	}

	start := time.Now()
	content, err := s.openRouter.GenerateResponse(ctx, prompt, processedImageData)
	common.LogAICall(prompt, time.Since(start), err, "")
	if err != nil {
		return nil, err
	}

	response := &Response{Content: content}

	if s.config.Cache.Enabled && s.cache != nil {
		_ = s.cache.Set(ctx, prompt, processedImageData, content)
	}

	return response, nil
}

// pace 限制對上游的最小請求間隔，避免免費模型觸發限流
func (s *Service) pace() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if wait := s.minInterval - now.Sub(s.lastRequest); wait > 0 {
		time.Sleep(wait)
		now = time.Now()
	}
	s.lastRequest = now
}
