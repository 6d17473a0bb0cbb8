package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"mealplan-generator/internal/infrastructure/config"
	"mealplan-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// flyerExtractionPrompt 傳單辨識提示詞，要求模型只回傳固定結構的 JSON
const flyerExtractionPrompt = `Analyze this grocery store flyer image and extract all product deals.
Return ONLY a JSON object in exactly this format, with no extra text:
{"storeName": "store name from the flyer", "products": [{"name": "product name", "price": 2.99, "category": "produce", "unit": "lb", "onSale": true, "originalPrice": 3.99}]}
Rules:
1. price must be a number (the current/sale price), not a string
2. category must be one of: produce, meat, dairy, pantry, snacks, beverages, frozen, bakery, deli, other
3. unit, onSale and originalPrice are optional
4. If the store name is not visible, use "Unknown Store"
5. Skip items where you cannot read a price`

// flyerPayload 模型回傳的傳單結構（模型欄位為 camelCase）
type flyerPayload struct {
	StoreName string         `json:"storeName"`
	Products  []flyerProduct `json:"products"`
}

type flyerProduct struct {
	Name          string      `json:"name"`
	Price         interface{} `json:"price"`
	Category      string      `json:"category"`
	Unit          string      `json:"unit"`
	OnSale        bool        `json:"onSale"`
	OriginalPrice interface{} `json:"originalPrice"`
}

// FlyerService 傳單辨識服務
type FlyerService struct {
	ai     Requester
	config *config.Config
}

// NewFlyerService 創建傳單辨識服務
func NewFlyerService(ai Requester, cfg *config.Config) *FlyerService {
	return &FlyerService{
		ai:     ai,
		config: cfg,
	}
}

// ExtractFlyers 對每張傳單圖片各發一次視覺模型請求，並行處理、
// 等全部完成後依輸入順序回傳。單張失敗不會中斷其他張，
// 失敗的位置降級為空結果（Unknown Store、無商品）。
func (s *FlyerService) ExtractFlyers(ctx context.Context, images []string) []common.FlyerResult {
	results := make([]common.FlyerResult, len(images))

	var wg sync.WaitGroup
	for i, img := range images {
		wg.Add(1)
		go func(idx int, imageData string) {
			defer wg.Done()
			result, err := s.extractOne(ctx, imageData)
			if err != nil {
				common.LogWarn("傳單辨識失敗，改用空結果",
					zap.Int("index", idx),
					zap.Error(err),
				)
				results[idx] = common.FlyerResult{
					StoreName: common.UnknownStore,
					Products:  []common.Product{},
				}
				return
			}
			results[idx] = result
		}(i, img)
	}
	wg.Wait()

	return results
}

// extractOne 處理單張傳單
func (s *FlyerService) extractOne(ctx context.Context, imageData string) (common.FlyerResult, error) {
	resp, err := s.ai.ProcessRequest(ctx, flyerExtractionPrompt, imageData)
	if err != nil {
		return common.FlyerResult{}, err
	}

	repaired, err := common.RepairJSONObject(resp.Content)
	if err != nil {
		return common.FlyerResult{}, err
	}

	var payload flyerPayload
	if err := common.ParseJSON(repaired, &payload); err != nil {
		return common.FlyerResult{}, common.WrapError(common.ErrParseFailure, fmt.Errorf("failed to parse flyer payload: %w", err))
	}
	if payload.Products == nil {
		return common.FlyerResult{}, common.WrapError(common.ErrSchemaViolation, fmt.Errorf("flyer payload has no products field"))
	}

	storeName := strings.TrimSpace(payload.StoreName)
	if storeName == "" {
		storeName = common.UnknownStore
	}

	products := make([]common.Product, 0, len(payload.Products))
	for _, p := range payload.Products {
		name := strings.TrimSpace(p.Name)
		price, ok := coercePrice(p.Price)
		// 名稱空白或價格非正數的商品直接剔除
		if name == "" || !ok || price <= 0 {
			continue
		}

		category := strings.ToLower(strings.TrimSpace(p.Category))
		if !common.IsValidProductCategory(category) {
			category = "other"
		}

		product := common.Product{
			Name:     name,
			Price:    price,
			Category: category,
			Unit:     strings.TrimSpace(p.Unit),
			OnSale:   p.OnSale,
		}
		if orig, ok := coercePrice(p.OriginalPrice); ok && orig > 0 {
			product.OriginalPrice = orig
		}
		products = append(products, product)
	}

	common.LogInfo("傳單辨識完成",
		zap.String("store", storeName),
		zap.Int("products", len(products)),
	)

	return common.FlyerResult{
		StoreName: storeName,
		Products:  products,
	}, nil
}

// coercePrice 將模型回傳的價格欄位（數字或字串）轉為 float64
func coercePrice(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case float64:
		return val, true
	case string:
		cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(val), "$"))
		var f float64
		if _, err := fmt.Sscanf(cleaned, "%f", &f); err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
