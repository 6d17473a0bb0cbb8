package mealplan

import (
	"context"
	"testing"

	"mealplan-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMenuParsesMessyResponse(t *testing.T) {
	stub := &stubRequester{
		menu: "Sure! Here is your plan:\n```json\n" + mustMenuJSON(t, validWeekMenu()) + "\n```",
	}
	svc := NewMenuService(stub, testConfig(), NewMatcher())

	meals, err := svc.GenerateMenu(context.Background(), []CandidateProduct{{Name: "Rice", Price: 2, Category: "pantry"}}, common.Preferences{FamilySize: 2})

	require.NoError(t, err)
	assert.Len(t, meals, 21)
}

func TestGenerateMenuShortResponse(t *testing.T) {
	stub := &stubRequester{menu: "ok"}
	svc := NewMenuService(stub, testConfig(), NewMatcher())

	_, err := svc.GenerateMenu(context.Background(), nil, common.Preferences{FamilySize: 1})
	require.Error(t, err)
	assert.True(t, common.IsParseFailure(err))
}

func TestGenerateMenuEmptyMeals(t *testing.T) {
	stub := &stubRequester{menu: `{"meals": []}`}
	svc := NewMenuService(stub, testConfig(), NewMatcher())

	_, err := svc.GenerateMenu(context.Background(), nil, common.Preferences{FamilySize: 1})
	require.Error(t, err)
	assert.True(t, common.IsSchemaViolation(err))
}

func TestBuildPromptIncludesConstraints(t *testing.T) {
	svc := NewMenuService(&stubRequester{}, testConfig(), NewMatcher())

	prompt, err := svc.buildPrompt(
		[]CandidateProduct{{Name: "Rice", Price: 2, Category: "pantry"}},
		common.Preferences{
			FamilySize:          2,
			Allergies:           []string{"nuts"},
			DietaryRestrictions: []string{"vegetarian"},
			Budget:              50,
		},
	)
	require.NoError(t, err)

	assert.Contains(t, prompt, `"Rice"`)
	assert.Contains(t, prompt, "exactly 21 meals")
	assert.Contains(t, prompt, "peanut")
	assert.Contains(t, prompt, "vegetarian")
	assert.Contains(t, prompt, "under $50.00")
}

func TestBuildPromptOmitsEmptyConstraints(t *testing.T) {
	svc := NewMenuService(&stubRequester{}, testConfig(), NewMatcher())

	prompt, err := svc.buildPrompt(nil, common.Preferences{FamilySize: 1})
	require.NoError(t, err)

	assert.NotContains(t, prompt, "allergies")
	assert.NotContains(t, prompt, "dietary restrictions")
	assert.NotContains(t, prompt, "under $")
}
