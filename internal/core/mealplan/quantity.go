package mealplan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// unitAliases 單位正規化表：別名 → (標準單位, 換算倍率)
var unitAliases = map[string]struct {
	Canonical string
	Factor    float64
}{
	"g":           {"g", 1},
	"gram":        {"g", 1},
	"grams":       {"g", 1},
	"kg":          {"g", 1000},
	"kilogram":    {"g", 1000},
	"kilograms":   {"g", 1000},
	"ml":          {"ml", 1},
	"milliliter":  {"ml", 1},
	"milliliters": {"ml", 1},
	"l":           {"ml", 1000},
	"liter":       {"ml", 1000},
	"liters":      {"ml", 1000},
	"tbsp":        {"tbsp", 1},
	"tablespoon":  {"tbsp", 1},
	"tablespoons": {"tbsp", 1},
	"tsp":         {"tsp", 1},
	"teaspoon":    {"tsp", 1},
	"teaspoons":   {"tsp", 1},
	"cup":         {"cup", 1},
	"cups":        {"cup", 1},
	"oz":          {"oz", 1},
	"ounce":       {"oz", 1},
	"ounces":      {"oz", 1},
	"lb":          {"lb", 1},
	"lbs":         {"lb", 1},
	"pound":       {"lb", 1},
	"pounds":      {"lb", 1},
}

// parsedQuantity 解析後的數量：標準單位下的數值
type parsedQuantity struct {
	Value float64
	Unit  string
}

// parseQuantity 解析「數值 單位」形式的自由文字。
// 數值接受小數與 a/b 分數；單位查別名表換算到標準單位。
// 無法解析時回傳 false，呼叫端退回字面合併。
func parseQuantity(q string) (parsedQuantity, bool) {
	fields := strings.Fields(strings.TrimSpace(q))
	if len(fields) != 2 {
		return parsedQuantity{}, false
	}

	value, ok := parseNumber(fields[0])
	if !ok {
		return parsedQuantity{}, false
	}

	alias, ok := unitAliases[strings.ToLower(fields[1])]
	if !ok {
		return parsedQuantity{}, false
	}

	return parsedQuantity{
		Value: value * alias.Factor,
		Unit:  alias.Canonical,
	}, true
}

// parseNumber 解析小數或 a/b 分數
func parseNumber(s string) (float64, bool) {
	if num, denom, found := strings.Cut(s, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(denom, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CombineQuantities 合併兩個數量文字。
// 兩者都能解析且換算到同一標準單位時回傳「總和 單位」，
// 否則以「q1, q2」字面串接，讓購物者自行判讀。
func CombineQuantities(q1, q2 string) string {
	if q1 == "" {
		return q2
	}
	if q2 == "" {
		return q1
	}

	p1, ok1 := parseQuantity(q1)
	p2, ok2 := parseQuantity(q2)
	if ok1 && ok2 && p1.Unit == p2.Unit {
		sum := math.Round((p1.Value+p2.Value)*100) / 100
		return fmt.Sprintf("%s %s", strconv.FormatFloat(sum, 'f', -1, 64), p1.Unit)
	}

	return fmt.Sprintf("%s, %s", q1, q2)
}
