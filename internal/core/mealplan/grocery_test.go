package mealplan

import (
	"testing"

	"mealplan-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() common.MealPlan {
	return common.MealPlan{
		ID: "plan-test",
		Meals: []common.Meal{
			{
				ID:   "meal-1",
				Name: "Oatmeal",
				Ingredients: []common.Ingredient{
					{Name: "Rice", Quantity: "1 cup", Price: 1.5},
					{Name: "Chicken Breast", Quantity: "500 g", Price: 4},
				},
			},
			{
				ID:   "meal-2",
				Name: "Fried Rice",
				Ingredients: []common.Ingredient{
					{Name: "rice", Quantity: "1 cup", Price: 1.5}, // 與 meal-1 的 Rice 合併
					{Name: "Orange Juice", Quantity: "1 l", Price: 3},
				},
			},
		},
	}
}

func TestBuildGroceryListConsolidates(t *testing.T) {
	g := NewGroceryService()

	list := g.BuildGroceryList(testPlan(), nil)

	require.Len(t, list.Items, 3)

	rice := list.Items[0]
	assert.Equal(t, "Rice", rice.Name)
	assert.Equal(t, 3.0, rice.Price)
	assert.Equal(t, "2 cup", rice.Quantity)

	assert.Equal(t, "Chicken Breast", list.Items[1].Name)
	assert.Equal(t, "Orange Juice", list.Items[2].Name)
}

func TestBuildGroceryListCostConservation(t *testing.T) {
	g := NewGroceryService()

	plan := testPlan()
	list := g.BuildGroceryList(plan, nil)

	ingredientTotal := 0.0
	for _, meal := range plan.Meals {
		for _, ing := range meal.Ingredients {
			ingredientTotal += ing.Price
		}
	}

	itemTotal := 0.0
	for _, item := range list.Items {
		itemTotal += item.Price
	}

	assert.InDelta(t, ingredientTotal, itemTotal, 0.001)
	assert.InDelta(t, ingredientTotal, list.TotalCost, 0.001)
}

func TestGroceryItemIDStable(t *testing.T) {
	// 同名（含大小寫與空白差異）導出相同 ID
	assert.Equal(t, GroceryItemID("Rice"), GroceryItemID("rice"))
	assert.Equal(t, GroceryItemID("Rice"), GroceryItemID("  Rice  "))
	assert.NotEqual(t, GroceryItemID("Rice"), GroceryItemID("Brown Rice"))
	assert.Len(t, GroceryItemID("Rice"), 12)

	// 重複導出清單時 ID 不變
	g := NewGroceryService()
	first := g.BuildGroceryList(testPlan(), nil)
	second := g.BuildGroceryList(testPlan(), nil)
	require.Equal(t, len(first.Items), len(second.Items))
	for i := range first.Items {
		assert.Equal(t, first.Items[i].ID, second.Items[i].ID)
	}
}

func TestBuildGroceryListCategories(t *testing.T) {
	g := NewGroceryService()
	list := g.BuildGroceryList(testPlan(), nil)

	byName := map[string]common.GroceryItem{}
	for _, item := range list.Items {
		byName[item.Name] = item
	}

	assert.Equal(t, "pantry", byName["Rice"].Category)
	assert.Equal(t, "meat", byName["Chicken Breast"].Category)
	assert.Equal(t, "beverages", byName["Orange Juice"].Category)
}

func TestBuildGroceryListStoreSections(t *testing.T) {
	g := NewGroceryService()

	flyers := []common.FlyerResult{
		{
			StoreName: "FreshMart",
			Products: []common.Product{
				{Name: "Chicken Breast", Price: 4, Category: "meat"},
			},
		},
	}

	list := g.BuildGroceryList(testPlan(), flyers)

	require.Len(t, list.Stores, 2)

	totals := 0.0
	for _, section := range list.Stores {
		for _, item := range section.Items {
			totals += item.Price
		}
		if section.StoreName == "FreshMart" {
			require.Len(t, section.Items, 1)
			assert.Equal(t, "Chicken Breast", section.Items[0].Name)
		} else {
			assert.Equal(t, common.UnknownStore, section.StoreName)
		}
	}
	assert.InDelta(t, list.TotalCost, totals, 0.001)
}

func TestToggleItem(t *testing.T) {
	g := NewGroceryService()

	list := g.BuildGroceryList(testPlan(), nil)
	require.Empty(t, list.CheckedItems)

	target := list.Items[0].ID

	toggled := g.ToggleItem(list, target)
	assert.True(t, toggled.Items[0].IsChecked)
	assert.Equal(t, []string{target}, toggled.CheckedItems)

	// 再切一次回到未勾選，checkedItems 重新導出為空
	back := g.ToggleItem(toggled, target)
	assert.False(t, back.Items[0].IsChecked)
	assert.Empty(t, back.CheckedItems)

	// 不存在的 ID 不影響清單
	same := g.ToggleItem(list, "no-such-id")
	assert.Equal(t, list.CheckedItems, same.CheckedItems)
}
