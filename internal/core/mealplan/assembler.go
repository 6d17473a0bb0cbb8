package mealplan

import (
	"fmt"
	"math"

	"mealplan-generator/internal/pkg/common"
)

// Assembler 將候選菜單換算為家庭規模的成品計畫
type Assembler struct{}

// NewAssembler 創建計畫組裝器
func NewAssembler() *Assembler {
	return &Assembler{}
}

// AssemblePlan 把候選餐點組裝成 MealPlan：
// 單人成本乘以家庭人數，餐點成本平均攤到各食材，
// 數量一律標示為份數。餐點 ID 在計畫內遞增，計畫 ID 為新 UUID。
func (a *Assembler) AssemblePlan(menu []common.CandidateMeal, prefs common.Preferences) common.MealPlan {
	meals := make([]common.Meal, 0, len(menu))
	totalCost := 0.0

	quantity := fmt.Sprintf("%d serving", prefs.FamilySize)
	if prefs.FamilySize > 1 {
		quantity = fmt.Sprintf("%d servings", prefs.FamilySize)
	}

	for i, candidate := range menu {
		mealCost := round2(candidate.CostForOnePerson * float64(prefs.FamilySize))

		ingredients := make([]common.Ingredient, 0, len(candidate.Ingredients))
		if len(candidate.Ingredients) > 0 {
			share := round2(mealCost / float64(len(candidate.Ingredients)))
			for _, name := range candidate.Ingredients {
				ingredients = append(ingredients, common.Ingredient{
					Name:     name,
					Quantity: quantity,
					Price:    share,
				})
			}
		}

		instructions := candidate.Instructions
		if len(instructions) == 0 {
			instructions = []string{fmt.Sprintf("Prepare %s with the listed ingredients", candidate.Name)}
		}

		meals = append(meals, common.Meal{
			ID:           fmt.Sprintf("meal-%d", i+1),
			Name:         candidate.Name,
			Category:     common.MealCategory(candidate.Type),
			Day:          candidate.Day,
			Ingredients:  ingredients,
			Instructions: instructions,
			Cost:         mealCost,
		})
		totalCost += mealCost
	}

	return common.MealPlan{
		ID:          common.GenerateUUID(),
		Meals:       meals,
		TotalCost:   round2(totalCost),
		FamilySize:  prefs.FamilySize,
		Preferences: prefs,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
