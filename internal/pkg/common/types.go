package common

import (
	"strings"
)

// MealCategory 餐別
type MealCategory string

const (
	MealBreakfast MealCategory = "breakfast"
	MealLunch     MealCategory = "lunch"
	MealDinner    MealCategory = "dinner"
	// MealSnack 僅作為 Meal.Category 的合法列舉值保留，週排程不使用
	MealSnack MealCategory = "snack"
)

// MealCategories 週計畫排程使用的餐別
var MealCategories = []MealCategory{MealBreakfast, MealLunch, MealDinner}

// Weekdays 星期標籤，依固定順序分配
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ProductCategories 傳單商品允許的分類
var ProductCategories = []string{
	"produce", "meat", "dairy", "pantry", "snacks",
	"beverages", "frozen", "bakery", "deli", "other",
}

// UnknownStore 無法辨識店名時的預設值
const UnknownStore = "Unknown Store"

// Product 傳單商品
type Product struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Unit          string  `json:"unit,omitempty"`
	OnSale        bool    `json:"on_sale,omitempty"`
	OriginalPrice float64 `json:"original_price,omitempty"`
}

// FlyerResult 單張傳單的辨識結果
type FlyerResult struct {
	StoreName string    `json:"store_name"`
	Products  []Product `json:"products"`
}

// Preferences 使用者偏好，所有下游階段唯讀
type Preferences struct {
	FamilySize          int      `json:"family_size"`
	Allergies           []string `json:"allergies"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Budget              float64  `json:"budget,omitempty"`
}

// Validate 驗證偏好設定（只檢查 family_size，其餘為呼叫端責任）
func (p Preferences) Validate() error {
	if p.FamilySize < 1 {
		return NewValidationError("family_size must be a positive integer")
	}
	return nil
}

// CandidateMeal 模型產出的候選餐點，僅存在於菜單生成與驗證之間
type CandidateMeal struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Day              string   `json:"day"`
	Ingredients      []string `json:"ingredients"`
	Instructions     []string `json:"instructions,omitempty"`
	CostForOnePerson float64  `json:"costForOnePerson"`
}

// Ingredient 餐點食材，數量為自由文字（數值+單位）
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Price    float64 `json:"price"`
}

// Meal 組裝完成的餐點，成本已依家庭人數換算，組裝後不可變
type Meal struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     MealCategory `json:"category"`
	Day          string       `json:"day,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Cost         float64      `json:"cost"`
}

// MealPlan 一週餐飲計畫
type MealPlan struct {
	ID          string       `json:"id"`
	Meals       []Meal       `json:"meals"`
	TotalCost   float64      `json:"total_cost"`
	FamilySize  int          `json:"family_size"`
	Preferences Preferences  `json:"preferences"`
	GroceryList *GroceryList `json:"grocery_list,omitempty"`
}

// GroceryItem 採買清單項目，ID 由正規化名稱決定，跨次生成保持一致
type GroceryItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  string  `json:"quantity"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	IsChecked bool    `json:"is_checked"`
}

// StoreSection 按店家分組的採買清單段落
type StoreSection struct {
	StoreName string        `json:"store_name"`
	Items     []GroceryItem `json:"items"`
	TotalCost float64       `json:"total_cost"`
}

// GroceryList 合併後的採買清單
type GroceryList struct {
	Items        []GroceryItem  `json:"items"`
	TotalCost    float64        `json:"total_cost"`
	Stores       []StoreSection `json:"stores"`
	CheckedItems []string       `json:"checked_items"`
}

// IsValidProductCategory 檢查分類是否在允許清單內
func IsValidProductCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

// StringSliceToString 將字符串切片轉換為逗號分隔的字符串
func StringSliceToString(slice []string) string {
	if len(slice) == 0 {
		return ""
	}
	return strings.Join(slice, ", ")
}
