package mealplan

import (
	"fmt"
	"strings"

	"mealplan-generator/internal/pkg/common"
)

// MenuValidator 候選菜單驗證器，收集全部違規而非遇錯即停
type MenuValidator struct {
	matcher     *Matcher
	daysPerWeek int
}

// NewMenuValidator 創建菜單驗證器
func NewMenuValidator(matcher *Matcher, daysPerWeek int) *MenuValidator {
	return &MenuValidator{
		matcher:     matcher,
		daysPerWeek: daysPerWeek,
	}
}

// ValidateMenu 檢查候選菜單並回傳所有違規描述；空切片代表通過
func (v *MenuValidator) ValidateMenu(meals []common.CandidateMeal, allergies []string) []string {
	var violations []string

	expected := v.daysPerWeek * len(common.MealCategories)
	if len(meals) != expected {
		violations = append(violations, fmt.Sprintf("expected %d meals, got %d", expected, len(meals)))
	}

	perCategory := make(map[string]int)
	namesPerCategory := make(map[string]map[string]bool)
	validDays := make(map[string]bool, v.daysPerWeek)
	for _, d := range common.Weekdays[:v.daysPerWeek] {
		validDays[d] = true
	}

	for i, meal := range meals {
		label := meal.Name
		if label == "" {
			label = fmt.Sprintf("meal #%d", i+1)
			violations = append(violations, fmt.Sprintf("%s has no name", label))
		}

		if !isMealCategory(meal.Type) {
			violations = append(violations, fmt.Sprintf("%s has invalid type %q", label, meal.Type))
		} else {
			perCategory[meal.Type]++

			key := strings.ToLower(strings.TrimSpace(meal.Name))
			if key != "" {
				if namesPerCategory[meal.Type] == nil {
					namesPerCategory[meal.Type] = make(map[string]bool)
				}
				if namesPerCategory[meal.Type][key] {
					violations = append(violations, fmt.Sprintf("duplicate %s name %q", meal.Type, meal.Name))
				}
				namesPerCategory[meal.Type][key] = true
			}
		}

		if !validDays[meal.Day] {
			violations = append(violations, fmt.Sprintf("%s has invalid day %q", label, meal.Day))
		}

		if len(meal.Ingredients) == 0 {
			violations = append(violations, fmt.Sprintf("%s has no ingredients", label))
		}

		if meal.CostForOnePerson <= 0 {
			violations = append(violations, fmt.Sprintf("%s has non-positive cost", label))
		}

		// 過敏原檢查涵蓋名稱與全部食材
		if v.matcher.IsForbidden(meal.Name, allergies) {
			violations = append(violations, fmt.Sprintf("%s name contains a forbidden ingredient", label))
		}
		for _, ing := range meal.Ingredients {
			if v.matcher.IsForbidden(ing, allergies) {
				violations = append(violations, fmt.Sprintf("%s ingredient %q is forbidden by allergies", label, ing))
			}
		}
	}

	for _, category := range common.MealCategories {
		if count := perCategory[string(category)]; count != v.daysPerWeek {
			violations = append(violations, fmt.Sprintf("expected %d %s meals, got %d", v.daysPerWeek, category, count))
		}
	}

	return violations
}

func isMealCategory(t string) bool {
	for _, c := range common.MealCategories {
		if string(c) == t {
			return true
		}
	}
	return false
}
