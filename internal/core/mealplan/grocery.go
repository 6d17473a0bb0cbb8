package mealplan

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"mealplan-generator/internal/pkg/common"
)

// groceryCategoryKeywords 採買項目分類的名稱關鍵字
var groceryCategoryKeywords = map[string][]string{
	"produce": {
		"apple", "banana", "orange", "berries", "grapes", "lemon", "lime",
		"lettuce", "tomato", "onion", "carrot", "potato", "pepper", "broccoli",
		"spinach", "celery", "cucumber", "zucchini", "garlic", "ginger",
		"avocado", "basil", "chives", "vegetable", "fruit", "corn", "peas",
	},
	"meat": {
		"chicken", "beef", "pork", "turkey", "salmon", "tuna", "shrimp", "fish",
	},
	"dairy": {
		"milk", "cheese", "yogurt", "butter", "cream", "egg",
	},
	"bakery": {
		"bread", "bagel", "tortilla", "dough", "bun",
	},
	"frozen": {
		"frozen",
	},
	"beverages": {
		"juice", "coffee", "tea", "soda", "water",
	},
}

// GroceryItemID 由正規化名稱導出穩定項目 ID，同名食材跨次生成結果一致
func GroceryItemID(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])[:12]
}

// GroceryService 採買清單服務
type GroceryService struct{}

// NewGroceryService 創建採買清單服務
func NewGroceryService() *GroceryService {
	return &GroceryService{}
}

// BuildGroceryList 把計畫中所有食材合併為採買清單。
// 以小寫去空白的名稱為合併鍵，重複食材累加價格並合併數量，
// 首次出現順序決定清單順序。flyers 用來把項目歸回來源店家，
// 對不上的歸入 Unknown Store 區段。
func (s *GroceryService) BuildGroceryList(plan common.MealPlan, flyers []common.FlyerResult) common.GroceryList {
	index := make(map[string]int)
	items := make([]common.GroceryItem, 0)

	for _, meal := range plan.Meals {
		for _, ing := range meal.Ingredients {
			key := strings.ToLower(strings.TrimSpace(ing.Name))
			if key == "" {
				continue
			}

			if i, exists := index[key]; exists {
				items[i].Price = round2(items[i].Price + ing.Price)
				items[i].Quantity = CombineQuantities(items[i].Quantity, ing.Quantity)
				continue
			}

			index[key] = len(items)
			items = append(items, common.GroceryItem{
				ID:       GroceryItemID(ing.Name),
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Price:    round2(ing.Price),
				Category: categoryFromName(ing.Name),
			})
		}
	}

	totalCost := 0.0
	for _, item := range items {
		totalCost += item.Price
	}

	return common.GroceryList{
		Items:        items,
		TotalCost:    round2(totalCost),
		Stores:       groupByStore(items, flyers),
		CheckedItems: []string{},
	}
}

// ToggleItem 切換單一項目的勾選狀態並重算 checkedItems。
// checkedItems 永遠由項目狀態重新導出，不直接增刪。
func (s *GroceryService) ToggleItem(list common.GroceryList, itemID string) common.GroceryList {
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			list.Items[i].IsChecked = !list.Items[i].IsChecked
			break
		}
	}

	// 店家區段持有項目副本，勾選狀態需同步
	for si := range list.Stores {
		for ii := range list.Stores[si].Items {
			if list.Stores[si].Items[ii].ID == itemID {
				list.Stores[si].Items[ii].IsChecked = !list.Stores[si].Items[ii].IsChecked
			}
		}
	}

	checked := []string{}
	for _, item := range list.Items {
		if item.IsChecked {
			checked = append(checked, item.ID)
		}
	}
	list.CheckedItems = checked

	return list
}

// categoryFromName 依名稱關鍵字推斷採買分類，無命中歸 pantry
func categoryFromName(name string) string {
	lower := strings.ToLower(name)
	for _, category := range []string{"frozen", "meat", "dairy", "bakery", "beverages", "produce"} {
		if containsAny(lower, groceryCategoryKeywords[category]) {
			return category
		}
	}
	return "pantry"
}

// groupByStore 依傳單商品名稱把項目歸回店家，保持店家首見順序
func groupByStore(items []common.GroceryItem, flyers []common.FlyerResult) []common.StoreSection {
	sectionIndex := make(map[string]int)
	sections := make([]common.StoreSection, 0)

	for _, item := range items {
		store := storeFor(item.Name, flyers)

		i, exists := sectionIndex[store]
		if !exists {
			i = len(sections)
			sectionIndex[store] = i
			sections = append(sections, common.StoreSection{StoreName: store})
		}
		sections[i].Items = append(sections[i].Items, item)
		sections[i].TotalCost = round2(sections[i].TotalCost + item.Price)
	}

	return sections
}

// storeFor 以名稱包含關係對回傳單商品；對不上歸 Unknown Store
func storeFor(itemName string, flyers []common.FlyerResult) string {
	lower := strings.ToLower(strings.TrimSpace(itemName))
	for _, flyer := range flyers {
		for _, p := range flyer.Products {
			productName := strings.ToLower(strings.TrimSpace(p.Name))
			if productName == "" {
				continue
			}
			if strings.Contains(lower, productName) || strings.Contains(productName, lower) {
				return flyer.StoreName
			}
		}
	}
	return common.UnknownStore
}
