package cache

import "context"

// Cache AI 回應快取的共用介面，記憶體與 Redis 實作皆滿足
type Cache interface {
	Get(ctx context.Context, prompt, imageData string) (string, error)
	Set(ctx context.Context, prompt, imageData, value string) error
	Close() error
}
