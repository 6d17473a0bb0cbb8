package mealplan

import (
	"fmt"
	"testing"

	"mealplan-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblePlanScalesCosts(t *testing.T) {
	a := NewAssembler()

	menu := []common.CandidateMeal{
		{
			Name:             "Vegetable Stir Fry",
			Type:             "dinner",
			Day:              "Monday",
			Ingredients:      []string{"rice", "mixed vegetables"},
			Instructions:     []string{"Stir-fry and serve"},
			CostForOnePerson: 3.5,
		},
	}
	prefs := common.Preferences{FamilySize: 4}

	plan := a.AssemblePlan(menu, prefs)

	require.Len(t, plan.Meals, 1)
	meal := plan.Meals[0]

	assert.Equal(t, 14.0, meal.Cost)
	assert.Equal(t, 14.0, plan.TotalCost)
	assert.Equal(t, 4, plan.FamilySize)
	assert.Equal(t, common.MealDinner, meal.Category)
	assert.Equal(t, "Monday", meal.Day)
	assert.Equal(t, []string{"Stir-fry and serve"}, meal.Instructions)

	// 餐點成本平均攤到各食材，數量標示份數
	require.Len(t, meal.Ingredients, 2)
	for _, ing := range meal.Ingredients {
		assert.Equal(t, 7.0, ing.Price)
		assert.Equal(t, "4 servings", ing.Quantity)
	}
}

func TestAssemblePlanSingleServing(t *testing.T) {
	a := NewAssembler()

	plan := a.AssemblePlan([]common.CandidateMeal{
		{Name: "Oatmeal", Type: "breakfast", Day: "Monday", Ingredients: []string{"oats"}, CostForOnePerson: 2},
	}, common.Preferences{FamilySize: 1})

	require.Len(t, plan.Meals, 1)
	assert.Equal(t, "1 serving", plan.Meals[0].Ingredients[0].Quantity)
	// 沒有指示時補一條通用指示
	assert.NotEmpty(t, plan.Meals[0].Instructions)
}

func TestAssemblePlanMealIDs(t *testing.T) {
	a := NewAssembler()

	var menu []common.CandidateMeal
	for i := 0; i < 5; i++ {
		menu = append(menu, common.CandidateMeal{
			Name:             fmt.Sprintf("Meal %d", i),
			Type:             "lunch",
			Day:              "Monday",
			Ingredients:      []string{"rice"},
			CostForOnePerson: 1,
		})
	}

	plan := a.AssemblePlan(menu, common.Preferences{FamilySize: 2})

	require.Len(t, plan.Meals, 5)
	for i, meal := range plan.Meals {
		assert.Equal(t, fmt.Sprintf("meal-%d", i+1), meal.ID)
	}
	assert.NotEmpty(t, plan.ID)

	// 計畫 ID 每次都是新的
	again := a.AssemblePlan(menu, common.Preferences{FamilySize: 2})
	assert.NotEqual(t, plan.ID, again.ID)
}

func TestAssemblePlanTotalCost(t *testing.T) {
	a := NewAssembler()

	menu := []common.CandidateMeal{
		{Name: "A", Type: "breakfast", Day: "Monday", Ingredients: []string{"x"}, CostForOnePerson: 1.25},
		{Name: "B", Type: "lunch", Day: "Monday", Ingredients: []string{"x"}, CostForOnePerson: 2.5},
		{Name: "C", Type: "dinner", Day: "Monday", Ingredients: []string{"x"}, CostForOnePerson: 3},
	}

	plan := a.AssemblePlan(menu, common.Preferences{FamilySize: 2})

	sum := 0.0
	for _, meal := range plan.Meals {
		sum += meal.Cost
	}
	assert.InDelta(t, sum, plan.TotalCost, 0.001)
	assert.InDelta(t, 13.5, plan.TotalCost, 0.001)
}
