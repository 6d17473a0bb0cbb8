package mealplan

import (
	"context"
	"errors"
	"sync"
	"testing"

	aiservice "mealplan-generator/internal/core/ai/service"
	"mealplan-generator/internal/infrastructure/config"
	"mealplan-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRequester 以圖片內容挑選回應的模型替身
type stubRequester struct {
	mu        sync.Mutex
	byImage   map[string]string
	errImages map[string]error
	menu      string
	menuErr   error
	menuCalls int
}

func (s *stubRequester) ProcessRequest(ctx context.Context, prompt string, imageData string) (*aiservice.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if imageData == "" {
		s.menuCalls++
		if s.menuErr != nil {
			return nil, s.menuErr
		}
		return &aiservice.Response{Content: s.menu}, nil
	}

	if err, ok := s.errImages[imageData]; ok {
		return nil, err
	}
	return &aiservice.Response{Content: s.byImage[imageData]}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Planner: config.PlannerConfig{
			DaysPerWeek:          7,
			MaxCandidateProducts: 60,
			MinResponseLength:    10,
		},
	}
}

func TestExtractFlyersPreservesOrder(t *testing.T) {
	stub := &stubRequester{
		byImage: map[string]string{
			"img-a": `{"storeName":"FreshMart","products":[{"name":"Rice","price":2,"category":"pantry"}]}`,
			"img-b": `{"storeName":"SaveALot","products":[{"name":"Bananas","price":0.59,"category":"produce"}]}`,
		},
	}
	svc := NewFlyerService(stub, testConfig())

	flyers := svc.ExtractFlyers(context.Background(), []string{"img-a", "img-b"})

	require.Len(t, flyers, 2)
	assert.Equal(t, "FreshMart", flyers[0].StoreName)
	assert.Equal(t, "SaveALot", flyers[1].StoreName)
}

func TestExtractFlyersDegradesFailures(t *testing.T) {
	stub := &stubRequester{
		byImage: map[string]string{
			"good": `{"storeName":"FreshMart","products":[{"name":"Rice","price":2,"category":"pantry"}]}`,
		},
		errImages: map[string]error{
			"bad": errors.New("upstream unavailable"),
		},
	}
	svc := NewFlyerService(stub, testConfig())

	flyers := svc.ExtractFlyers(context.Background(), []string{"bad", "good"})

	require.Len(t, flyers, 2)
	assert.Equal(t, common.UnknownStore, flyers[0].StoreName)
	assert.Empty(t, flyers[0].Products)
	assert.Equal(t, "FreshMart", flyers[1].StoreName)
	require.Len(t, flyers[1].Products, 1)
}

func TestExtractFlyersFiltersBadProducts(t *testing.T) {
	stub := &stubRequester{
		byImage: map[string]string{
			"img": `{"storeName":"FreshMart","products":[
				{"name":"Rice","price":2,"category":"pantry"},
				{"name":"","price":3,"category":"pantry"},
				{"name":"Free Sample","price":0,"category":"other"},
				{"name":"Mystery","price":"not a number","category":"other"},
				{"name":"String Price","price":"$4.50","category":"weird-category"}
			]}`,
		},
	}
	svc := NewFlyerService(stub, testConfig())

	flyers := svc.ExtractFlyers(context.Background(), []string{"img"})

	require.Len(t, flyers, 1)
	products := flyers[0].Products
	require.Len(t, products, 2)

	assert.Equal(t, "Rice", products[0].Name)
	assert.Equal(t, 2.0, products[0].Price)

	// 字串價格可救回，未知分類歸 other
	assert.Equal(t, "String Price", products[1].Name)
	assert.Equal(t, 4.5, products[1].Price)
	assert.Equal(t, "other", products[1].Category)
}

func TestExtractFlyersUnknownStoreDefault(t *testing.T) {
	stub := &stubRequester{
		byImage: map[string]string{
			"img": `{"storeName":"","products":[{"name":"Rice","price":2,"category":"pantry"}]}`,
		},
	}
	svc := NewFlyerService(stub, testConfig())

	flyers := svc.ExtractFlyers(context.Background(), []string{"img"})
	require.Len(t, flyers, 1)
	assert.Equal(t, common.UnknownStore, flyers[0].StoreName)
}

func TestExtractFlyersRepairsModelOutput(t *testing.T) {
	stub := &stubRequester{
		byImage: map[string]string{
			"img": "```json\n" + `{"storeName":"X","products":[{"name":"Milk","price":2.5,"category":"dairy"}]},}` + "\n```",
		},
	}
	svc := NewFlyerService(stub, testConfig())

	flyers := svc.ExtractFlyers(context.Background(), []string{"img"})
	require.Len(t, flyers, 1)
	assert.Equal(t, "X", flyers[0].StoreName)
	require.Len(t, flyers[0].Products, 1)
	assert.Equal(t, "Milk", flyers[0].Products[0].Name)
}
