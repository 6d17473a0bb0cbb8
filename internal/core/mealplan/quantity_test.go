package mealplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineQuantities(t *testing.T) {
	tests := []struct {
		name string
		q1   string
		q2   string
		want string
	}{
		{"same unit summed", "1 cup", "1 cup", "2 cup"},
		{"kg converted to grams", "500 g", "1 kg", "1500 g"},
		{"liters converted to ml", "250 ml", "1 l", "1250 ml"},
		{"plural alias normalized", "2 cups", "1 cup", "3 cup"},
		{"fractions summed", "1/2 cup", "1/4 cup", "0.75 cup"},
		{"unknown unit joined literally", "2", "bunch", "2, bunch"},
		{"mismatched units joined literally", "1 cup", "200 g", "1 cup, 200 g"},
		{"free text joined literally", "a pinch", "to taste", "a pinch, to taste"},
		{"empty left returns right", "", "1 cup", "1 cup"},
		{"empty right returns left", "2 tbsp", "", "2 tbsp"},
		{"pounds alias", "1 lb", "2 lbs", "3 lb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CombineQuantities(tt.q1, tt.q2))
		})
	}
}

func TestParseQuantity(t *testing.T) {
	p, ok := parseQuantity("1.5 kg")
	assert.True(t, ok)
	assert.Equal(t, "g", p.Unit)
	assert.InDelta(t, 1500, p.Value, 0.001)

	p, ok = parseQuantity("3/4 tsp")
	assert.True(t, ok)
	assert.Equal(t, "tsp", p.Unit)
	assert.InDelta(t, 0.75, p.Value, 0.001)

	_, ok = parseQuantity("some flour")
	assert.False(t, ok)

	_, ok = parseQuantity("2")
	assert.False(t, ok)

	_, ok = parseQuantity("1/0 cup")
	assert.False(t, ok)
}
