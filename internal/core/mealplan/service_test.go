package mealplan

import (
	"context"
	"errors"
	"testing"

	"mealplan-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMenuJSON(t *testing.T, meals []common.CandidateMeal) string {
	t.Helper()
	out, err := common.ToJSON(menuPayload{Meals: meals})
	require.NoError(t, err)
	return out
}

func TestGeneratePlanHappyPath(t *testing.T) {
	stub := &stubRequester{
		byImage: map[string]string{
			"img": `{"storeName":"FreshMart","products":[{"name":"Rice","price":2,"category":"pantry"},{"name":"Carrots","price":1,"category":"produce"}]}`,
		},
		menu: mustMenuJSON(t, validWeekMenu()),
	}
	svc := NewService(stub, testConfig())

	prefs := common.Preferences{FamilySize: 2}
	plan, err := svc.GeneratePlan(context.Background(), []string{"img"}, prefs)

	require.NoError(t, err)
	assert.Len(t, plan.Meals, 21)
	assert.Greater(t, plan.TotalCost, 0.0)
	assert.Equal(t, 2, plan.FamilySize)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, 1, stub.menuCalls)

	require.NotNil(t, plan.GroceryList)
	assert.NotEmpty(t, plan.GroceryList.Items)
	assert.Greater(t, plan.GroceryList.TotalCost, 0.0)
}

func TestGeneratePlanRejectsInvalidPreferences(t *testing.T) {
	svc := NewService(&stubRequester{}, testConfig())

	_, err := svc.GeneratePlan(context.Background(), []string{"img"}, common.Preferences{FamilySize: 0})
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestGeneratePlanTotalExtractionFailure(t *testing.T) {
	stub := &stubRequester{
		errImages: map[string]error{
			"a": errors.New("upstream down"),
			"b": errors.New("upstream down"),
		},
	}
	svc := NewService(stub, testConfig())

	prefs := common.Preferences{FamilySize: 3}
	plan, err := svc.GeneratePlan(context.Background(), []string{"a", "b"}, prefs)

	// 傳單全滅也不對外失敗：沒有候選商品就直接走保底菜單
	require.NoError(t, err)
	assert.Len(t, plan.Meals, 21)
	assert.Greater(t, plan.TotalCost, 0.0)
	assert.Equal(t, 0, stub.menuCalls)
}

func TestGeneratePlanMenuErrorFallsBack(t *testing.T) {
	stub := &stubRequester{
		byImage: map[string]string{
			"img": `{"storeName":"FreshMart","products":[{"name":"Rice","price":2,"category":"pantry"}]}`,
		},
		menuErr: errors.New("model unavailable"),
	}
	svc := NewService(stub, testConfig())

	plan, err := svc.GeneratePlan(context.Background(), []string{"img"}, common.Preferences{FamilySize: 2})

	require.NoError(t, err)
	assert.Len(t, plan.Meals, 21)
	assert.Equal(t, 1, stub.menuCalls)
}

func TestGeneratePlanInvalidMenuFallsBack(t *testing.T) {
	// 模型少給一餐，驗證失敗後整份丟棄改用保底菜單
	short := validWeekMenu()[:20]
	stub := &stubRequester{
		byImage: map[string]string{
			"img": `{"storeName":"FreshMart","products":[{"name":"Rice","price":2,"category":"pantry"}]}`,
		},
		menu: mustMenuJSON(t, short),
	}
	svc := NewService(stub, testConfig())

	plan, err := svc.GeneratePlan(context.Background(), []string{"img"}, common.Preferences{FamilySize: 2})

	require.NoError(t, err)
	assert.Len(t, plan.Meals, 21)
}

func TestGeneratePlanAllergyPoisonedMenuFallsBack(t *testing.T) {
	// 模型無視指示塞了花生醬：驗證擋下，保底菜單不含過敏原
	poisoned := validWeekMenu()
	poisoned[0].Ingredients = []string{"peanut butter", "bread"}

	stub := &stubRequester{
		byImage: map[string]string{
			"img": `{"storeName":"FreshMart","products":[{"name":"Rice","price":2,"category":"pantry"}]}`,
		},
		menu: mustMenuJSON(t, poisoned),
	}
	svc := NewService(stub, testConfig())

	prefs := common.Preferences{FamilySize: 2, Allergies: []string{"nuts"}}
	plan, err := svc.GeneratePlan(context.Background(), []string{"img"}, prefs)

	require.NoError(t, err)
	require.Len(t, plan.Meals, 21)

	matcher := NewMatcher()
	for _, meal := range plan.Meals {
		for _, ing := range meal.Ingredients {
			assert.False(t, matcher.IsForbidden(ing.Name, prefs.Allergies), "meal %q ingredient %q", meal.Name, ing.Name)
		}
	}
}

func TestGeneratePlanFromFlyers(t *testing.T) {
	stub := &stubRequester{
		menu: mustMenuJSON(t, validWeekMenu()),
	}
	svc := NewService(stub, testConfig())

	flyers := []common.FlyerResult{
		{
			StoreName: "FreshMart",
			Products: []common.Product{
				{Name: "Rice", Price: 2, Category: "pantry"},
			},
		},
	}

	plan, err := svc.GeneratePlanFromFlyers(context.Background(), flyers, common.Preferences{FamilySize: 2})

	require.NoError(t, err)
	assert.Len(t, plan.Meals, 21)
	require.NotNil(t, plan.GroceryList)
}

func TestToggleGroceryItemRoundTrip(t *testing.T) {
	stub := &stubRequester{menu: mustMenuJSON(t, validWeekMenu())}
	svc := NewService(stub, testConfig())

	flyers := []common.FlyerResult{
		{StoreName: "FreshMart", Products: []common.Product{{Name: "Rice", Price: 2, Category: "pantry"}}},
	}
	plan, err := svc.GeneratePlanFromFlyers(context.Background(), flyers, common.Preferences{FamilySize: 2})
	require.NoError(t, err)
	require.NotNil(t, plan.GroceryList)
	require.NotEmpty(t, plan.GroceryList.Items)

	target := plan.GroceryList.Items[0].ID
	toggled := svc.ToggleGroceryItem(*plan.GroceryList, target)
	assert.Contains(t, toggled.CheckedItems, target)
}
