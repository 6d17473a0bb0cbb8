package mealplan

import "strings"

// allergenKeywords 過敏原標籤對應的觸發關鍵字，比對一律小寫子字串
var allergenKeywords = map[string][]string{
	"nuts":      {"nut", "peanut", "almond", "cashew", "walnut", "pecan", "pistachio", "hazelnut"},
	"dairy":     {"milk", "cheese", "butter", "cream", "yogurt", "dairy"},
	"gluten":    {"wheat", "bread", "pasta", "flour", "gluten", "barley", "rye"},
	"eggs":      {"egg", "eggs", "mayonnaise"},
	"seafood":   {"fish", "salmon", "tuna", "cod", "tilapia", "seafood"},
	"soy":       {"soy", "tofu", "edamame", "soybean"},
	"shellfish": {"shrimp", "crab", "lobster", "clam", "mussel", "oyster", "scallop"},
}

// vegetarianExcluded 素食排除的肉類關鍵字
var vegetarianExcluded = []string{"turkey", "chicken", "beef", "pork", "fish"}

// veganExcluded 純素額外排除的動物性食材關鍵字
var veganExcluded = []string{
	"eggs", "egg", "cheese", "butter", "milk", "cream", "yogurt", "honey",
}

// Matcher 以靜態關鍵字表比對食材文字與過敏原標籤
type Matcher struct {
	keywords map[string][]string
}

// NewMatcher 創建過敏原比對器，複製預設關鍵字表
func NewMatcher() *Matcher {
	kw := make(map[string][]string, len(allergenKeywords))
	for label, words := range allergenKeywords {
		kw[label] = append([]string(nil), words...)
	}
	return &Matcher{keywords: kw}
}

// IsForbidden 判斷一段食材文字是否命中任一過敏原
func (m *Matcher) IsForbidden(text string, allergies []string) bool {
	lower := strings.ToLower(text)
	for _, allergy := range allergies {
		for _, kw := range m.keywordsFor(allergy) {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// ForbiddenKeywords 收集一組過敏原展開後的全部關鍵字，供提示詞使用
func (m *Matcher) ForbiddenKeywords(allergies []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, allergy := range allergies {
		for _, kw := range m.keywordsFor(allergy) {
			if !seen[kw] {
				seen[kw] = true
				out = append(out, kw)
			}
		}
	}
	return out
}

// keywordsFor 查表取關鍵字；未知標籤退化為標籤本身的小寫子字串
func (m *Matcher) keywordsFor(allergy string) []string {
	label := strings.ToLower(strings.TrimSpace(allergy))
	if label == "" {
		return nil
	}
	if words, ok := m.keywords[label]; ok {
		return words
	}
	return []string{label}
}

// violatesDiet 判斷食材文字是否違反飲食限制（vegetarian / vegan）
func violatesDiet(text string, restrictions []string) bool {
	lower := strings.ToLower(text)
	for _, r := range restrictions {
		switch strings.ToLower(strings.TrimSpace(r)) {
		case "vegetarian":
			if containsAny(lower, vegetarianExcluded) {
				return true
			}
		case "vegan":
			if containsAny(lower, vegetarianExcluded) || containsAny(lower, veganExcluded) {
				return true
			}
		}
	}
	return false
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
