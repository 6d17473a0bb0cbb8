package mealplan

import (
	"context"
	"fmt"
	"strings"

	"mealplan-generator/internal/infrastructure/config"
	"mealplan-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// menuPayload 模型回傳的候選菜單
type menuPayload struct {
	Meals []common.CandidateMeal `json:"meals"`
}

// MenuService 菜單生成服務：單次文字模型呼叫，失敗不重試，由呼叫端回退
type MenuService struct {
	ai      Requester
	config  *config.Config
	matcher *Matcher
}

// NewMenuService 創建菜單生成服務
func NewMenuService(ai Requester, cfg *config.Config, matcher *Matcher) *MenuService {
	return &MenuService{
		ai:      ai,
		config:  cfg,
		matcher: matcher,
	}
}

// GenerateMenu 依候選商品與偏好生成一週候選菜單
func (s *MenuService) GenerateMenu(ctx context.Context, candidates []CandidateProduct, prefs common.Preferences) ([]common.CandidateMeal, error) {
	prompt, err := s.buildPrompt(candidates, prefs)
	if err != nil {
		return nil, err
	}

	resp, err := s.ai.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(resp.Content)
	if len(content) < s.config.Planner.MinResponseLength {
		return nil, common.WrapError(common.ErrParseFailure, fmt.Errorf("menu response too short: %d chars", len(content)))
	}

	repaired, err := common.RepairJSONObject(content)
	if err != nil {
		return nil, err
	}

	var payload menuPayload
	if err := common.ParseJSON(repaired, &payload); err != nil {
		return nil, common.WrapError(common.ErrParseFailure, fmt.Errorf("failed to parse menu payload: %w", err))
	}
	if len(payload.Meals) == 0 {
		return nil, common.WrapError(common.ErrSchemaViolation, fmt.Errorf("menu payload has no meals"))
	}

	common.LogInfo("候選菜單已生成",
		zap.Int("meals", len(payload.Meals)),
	)

	return payload.Meals, nil
}

// buildPrompt 組裝菜單提示詞：候選商品 JSON、禁用食材、飲食限制與預算
func (s *MenuService) buildPrompt(candidates []CandidateProduct, prefs common.Preferences) (string, error) {
	candidatesJSON, err := common.ToJSON(candidates)
	if err != nil {
		return "", fmt.Errorf("failed to encode candidate products: %w", err)
	}

	days := s.config.Planner.DaysPerWeek
	total := days * len(common.MealCategories)

	var sb strings.Builder
	sb.WriteString("You are a meal planner. Create a weekly meal plan using mainly these on-sale grocery products:\n")
	sb.WriteString(candidatesJSON)
	sb.WriteString("\n\nReturn ONLY a JSON object in exactly this format, with no extra text:\n")
	sb.WriteString(`{"meals": [{"name": "meal name", "type": "breakfast", "day": "Monday", "ingredients": ["ingredient 1", "ingredient 2"], "instructions": ["step 1", "step 2"], "costForOnePerson": 3.5}]}`)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString(fmt.Sprintf("1. Produce exactly %d meals: breakfast, lunch and dinner for each of the %d days (%s)\n",
		total, days, strings.Join(common.Weekdays[:days], ", ")))
	sb.WriteString("2. type must be one of: breakfast, lunch, dinner\n")
	sb.WriteString("3. costForOnePerson is the estimated cost in dollars for one person, and must be a positive number\n")
	sb.WriteString("4. Every meal needs at least one ingredient\n")

	rule := 5
	if forbidden := s.matcher.ForbiddenKeywords(prefs.Allergies); len(forbidden) > 0 {
		sb.WriteString(fmt.Sprintf("%d. NEVER use any of these ingredients (allergies): %s\n", rule, strings.Join(forbidden, ", ")))
		rule++
	}
	if len(prefs.DietaryRestrictions) > 0 {
		sb.WriteString(fmt.Sprintf("%d. The plan must respect these dietary restrictions: %s\n", rule, common.StringSliceToString(prefs.DietaryRestrictions)))
		rule++
	}
	if prefs.Budget > 0 {
		sb.WriteString(fmt.Sprintf("%d. Keep the weekly cost for one person under $%.2f\n", rule, prefs.Budget))
	}

	return sb.String(), nil
}
