package mealplan

import (
	"fmt"
	"testing"

	"mealplan-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCandidates(t *testing.T) {
	matcher := NewMatcher()

	products := []common.Product{
		{Name: "Peanut Butter", Price: 3.99, Category: "pantry"},
		{Name: "Bananas", Price: 0.59, Category: "produce"},
		{Name: "bananas", Price: 0.49, Category: "produce"}, // 同名重複，保留先出現者
		{Name: "Whole Milk", Price: 2.5, Category: "dairy"},
		{Name: "  ", Price: 1, Category: "other"},
	}

	got := FilterCandidates(products, []string{"nuts"}, matcher, 60)

	require.Len(t, got, 2)
	assert.Equal(t, "Bananas", got[0].Name)
	assert.Equal(t, 0.59, got[0].Price)
	assert.Equal(t, "Whole Milk", got[1].Name)
}

func TestFilterCandidatesCap(t *testing.T) {
	matcher := NewMatcher()

	products := make([]common.Product, 0, 100)
	for i := 0; i < 100; i++ {
		products = append(products, common.Product{
			Name:     fmt.Sprintf("Item %d", i),
			Price:    1,
			Category: "other",
		})
	}

	got := FilterCandidates(products, nil, matcher, 60)
	assert.Len(t, got, 60)
	assert.Equal(t, "Item 0", got[0].Name)
	assert.Equal(t, "Item 59", got[59].Name)
}

func TestFilterCandidatesAllForbidden(t *testing.T) {
	matcher := NewMatcher()

	products := []common.Product{
		{Name: "Milk", Price: 2.5, Category: "dairy"},
		{Name: "Cheddar Cheese", Price: 4, Category: "dairy"},
	}

	got := FilterCandidates(products, []string{"dairy"}, matcher, 60)
	assert.Empty(t, got)
}
