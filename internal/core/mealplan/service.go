package mealplan

import (
	"context"

	"mealplan-generator/internal/infrastructure/config"
	"mealplan-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 餐飲計畫管線的總入口：
// 傳單辨識 → 商品收斂 → 菜單生成 → 驗證 → 保底 → 組裝 → 採買清單。
// 偏好驗證通過後整條管線不再對外失敗。
type Service struct {
	config    *config.Config
	matcher   *Matcher
	flyers    *FlyerService
	menu      *MenuService
	validator *MenuValidator
	fallback  *FallbackPlanner
	assembler *Assembler
	grocery   *GroceryService
}

// NewService 創建餐飲計畫服務
func NewService(ai Requester, cfg *config.Config) *Service {
	matcher := NewMatcher()
	return &Service{
		config:    cfg,
		matcher:   matcher,
		flyers:    NewFlyerService(ai, cfg),
		menu:      NewMenuService(ai, cfg, matcher),
		validator: NewMenuValidator(matcher, cfg.Planner.DaysPerWeek),
		fallback:  NewFallbackPlanner(matcher, cfg.Planner.DaysPerWeek),
		assembler: NewAssembler(),
		grocery:   NewGroceryService(),
	}
}

// ExtractFlyers 僅做傳單辨識，供呼叫端先行校對商品
func (s *Service) ExtractFlyers(ctx context.Context, images []string) []common.FlyerResult {
	return s.flyers.ExtractFlyers(ctx, images)
}

// GeneratePlan 從傳單圖片生成完整一週計畫
func (s *Service) GeneratePlan(ctx context.Context, images []string, prefs common.Preferences) (common.MealPlan, error) {
	if err := prefs.Validate(); err != nil {
		return common.MealPlan{}, err
	}

	flyers := s.flyers.ExtractFlyers(ctx, images)
	return s.GeneratePlanFromFlyers(ctx, flyers, prefs)
}

// GeneratePlanFromFlyers 從已辨識（或人工校對後）的傳單結果生成計畫
func (s *Service) GeneratePlanFromFlyers(ctx context.Context, flyers []common.FlyerResult, prefs common.Preferences) (common.MealPlan, error) {
	if err := prefs.Validate(); err != nil {
		return common.MealPlan{}, err
	}

	var products []common.Product
	for _, flyer := range flyers {
		products = append(products, flyer.Products...)
	}

	candidates := FilterCandidates(products, prefs.Allergies, s.matcher, s.config.Planner.MaxCandidateProducts)

	menu := s.generateOrFallback(ctx, candidates, prefs)

	plan := s.assembler.AssemblePlan(menu, prefs)
	groceryList := s.grocery.BuildGroceryList(plan, flyers)
	plan.GroceryList = &groceryList

	common.LogInfo("餐飲計畫已生成",
		zap.String("plan_id", plan.ID),
		zap.Int("meals", len(plan.Meals)),
		zap.Float64("total_cost", plan.TotalCost),
	)

	return plan, nil
}

// BuildGroceryList 從既有計畫重新導出採買清單
func (s *Service) BuildGroceryList(plan common.MealPlan, flyers []common.FlyerResult) common.GroceryList {
	return s.grocery.BuildGroceryList(plan, flyers)
}

// ToggleGroceryItem 切換採買項目勾選狀態
func (s *Service) ToggleGroceryItem(list common.GroceryList, itemID string) common.GroceryList {
	return s.grocery.ToggleItem(list, itemID)
}

// generateOrFallback 先試模型菜單，失敗或驗證不過就換保底菜單。
// 模型路徑只試一次，不重試。
func (s *Service) generateOrFallback(ctx context.Context, candidates []CandidateProduct, prefs common.Preferences) []common.CandidateMeal {
	if len(candidates) == 0 {
		common.LogWarn("無可用候選商品，直接使用保底菜單")
		return s.fallback.GenerateMenu(prefs)
	}

	menu, err := s.menu.GenerateMenu(ctx, candidates, prefs)
	if err != nil {
		common.LogWarn("菜單生成失敗，改用保底菜單", zap.Error(err))
		return s.fallback.GenerateMenu(prefs)
	}

	if violations := s.validator.ValidateMenu(menu, prefs.Allergies); len(violations) > 0 {
		common.LogWarn("候選菜單未通過驗證，改用保底菜單",
			zap.Strings("violations", violations),
		)
		return s.fallback.GenerateMenu(prefs)
	}

	return menu
}
