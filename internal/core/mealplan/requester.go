package mealplan

import (
	"context"

	aiservice "mealplan-generator/internal/core/ai/service"
)

// Requester 模型呼叫入口，由 AI 服務實作；測試可注入替身
type Requester interface {
	ProcessRequest(ctx context.Context, prompt string, imageData string) (*aiservice.Response, error)
}
