package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"mealplan-generator/internal/infrastructure/config"
	"mealplan-generator/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// OpenRouterService OpenRouter 服務
type OpenRouterService struct {
	config *config.Config
	client *resty.Client
}

// NewOpenRouterService 創建 OpenRouter 服務
func NewOpenRouterService(cfg *config.Config) *OpenRouterService {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://mealplan-generator.com").
		SetHeader("X-Title", "MealPlan Generator")

	return &OpenRouterService{
		config: cfg,
		client: client,
	}
}

// GenerateResponse 生成回應。imageData 為空時走純文字模型，否則走視覺模型。
func (s *OpenRouterService) GenerateResponse(ctx context.Context, prompt string, imageData string) (string, error) {
	// 簡化 prompt：去除多餘換行、前後空白，連續空白合併為一格
	simplePrompt := strings.TrimSpace(prompt)
	simplePrompt = strings.Join(strings.Fields(simplePrompt), " ")

	msgContent := []common.Content{
		{Type: "text", Text: simplePrompt},
	}
	model := s.config.OpenRouter.TextModel
	if imageData != "" {
		model = s.config.OpenRouter.Model
		url := imageData
		if !strings.HasPrefix(imageData, "data:image/") {
			url = fmt.Sprintf("data:image/jpeg;base64,%s", imageData)
		}
		msgContent = append(msgContent, common.Content{
			Type:     "image_url",
			ImageURL: &common.ImageURL{URL: url},
		})
	}

	// 構建請求
	req := common.AIRequest{
		Model: model,
		Messages: []common.Message{
			{Role: "user", Content: msgContent},
		},
		MaxTokens: s.config.OpenRouter.MaxTokens,
	}

	// 發送請求
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", common.WrapError(common.ErrTransport, fmt.Errorf("failed to send request to OpenRouter: %w", err))
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("OpenRouter API 回應異常",
			zap.Int("status", resp.StatusCode()),
			zap.String("model", model),
		)
		return "", common.WrapError(common.ErrTransport, fmt.Errorf("OpenRouter API returned error: %s", resp.String()))
	}

	// 解析回應
	var result common.AIResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", common.WrapError(common.ErrTransport, fmt.Errorf("failed to parse OpenRouter response: %w", err))
	}

	if len(result.Choices) == 0 {
		return "", common.WrapError(common.ErrTransport, fmt.Errorf("no choices in OpenRouter response"))
	}

	return result.Choices[0].Message.Content, nil
}
