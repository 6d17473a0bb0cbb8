package mealplan

import (
	"strings"

	"mealplan-generator/internal/pkg/common"
)

// CandidateProduct 進入菜單提示詞的精簡商品投影
type CandidateProduct struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// FilterCandidates 將傳單商品收斂為菜單生成的候選清單：
// 先剔除命中過敏原的商品，再以名稱（不分大小寫）去重（保留先出現者），
// 最後截斷到 maxCandidates，投影成精簡欄位。
func FilterCandidates(products []common.Product, allergies []string, matcher *Matcher, maxCandidates int) []CandidateProduct {
	seen := make(map[string]bool, len(products))
	out := make([]CandidateProduct, 0, len(products))

	for _, p := range products {
		if matcher.IsForbidden(p.Name, allergies) {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(p.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, CandidateProduct{
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
		})
		if len(out) >= maxCandidates {
			break
		}
	}

	return out
}
