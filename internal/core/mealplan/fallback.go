package mealplan

import (
	"fmt"
	"strings"

	"mealplan-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// fallbackBanks 各餐別的固定範本庫。範本會先經過敏原與飲食限制
// 過濾，不足的天數再用 neutralBanks 補齊。
var fallbackBanks = map[common.MealCategory][]common.CandidateMeal{
	common.MealBreakfast: {
		{Name: "Scrambled Eggs with Toast", Ingredients: []string{"eggs", "bread", "butter"}, Instructions: []string{"Whisk the eggs with a pinch of salt", "Scramble in a buttered pan over low heat", "Serve on toasted bread"}, CostForOnePerson: 2.5},
		{Name: "Greek Yogurt Parfait", Ingredients: []string{"yogurt", "granola", "berries"}, Instructions: []string{"Layer yogurt, granola and berries in a glass"}, CostForOnePerson: 3},
		{Name: "Peanut Butter Banana Toast", Ingredients: []string{"bread", "peanut butter", "banana"}, Instructions: []string{"Toast the bread", "Spread peanut butter and top with banana slices"}, CostForOnePerson: 2},
		{Name: "Cheese Omelette", Ingredients: []string{"eggs", "cheese", "olive oil"}, Instructions: []string{"Beat the eggs", "Cook in an oiled pan and fold over the cheese"}, CostForOnePerson: 2.8},
		{Name: "Pancakes with Maple Syrup", Ingredients: []string{"flour", "eggs", "milk", "maple syrup"}, Instructions: []string{"Mix the batter", "Cook pancakes on a griddle", "Serve with maple syrup"}, CostForOnePerson: 2.6},
		{Name: "Avocado Toast", Ingredients: []string{"bread", "avocado", "lemon juice"}, Instructions: []string{"Toast the bread", "Mash avocado with lemon juice and spread"}, CostForOnePerson: 3.2},
		{Name: "Smoked Salmon Bagel", Ingredients: []string{"bagel", "cream cheese", "smoked salmon"}, Instructions: []string{"Halve and toast the bagel", "Spread cream cheese and top with salmon"}, CostForOnePerson: 4.5},
	},
	common.MealLunch: {
		{Name: "Grilled Chicken Salad", Ingredients: []string{"chicken breast", "lettuce", "tomatoes", "olive oil"}, Instructions: []string{"Grill the chicken and slice", "Toss with greens and dressing"}, CostForOnePerson: 5},
		{Name: "Turkey Sandwich", Ingredients: []string{"bread", "turkey slices", "lettuce", "mustard"}, Instructions: []string{"Assemble the sandwich with all fillings"}, CostForOnePerson: 4},
		{Name: "Tuna Pasta Salad", Ingredients: []string{"pasta", "tuna", "mayonnaise", "celery"}, Instructions: []string{"Cook and cool the pasta", "Mix with tuna, mayonnaise and celery"}, CostForOnePerson: 4.2},
		{Name: "Tomato Soup with Grilled Cheese", Ingredients: []string{"tomatoes", "bread", "cheese", "butter"}, Instructions: []string{"Simmer and blend the soup", "Grill the cheese sandwich and serve alongside"}, CostForOnePerson: 3.8},
		{Name: "Beef Burrito Bowl", Ingredients: []string{"ground beef", "rice", "beans", "salsa"}, Instructions: []string{"Brown the beef", "Serve over rice with beans and salsa"}, CostForOnePerson: 5.5},
		{Name: "Shrimp Fried Rice", Ingredients: []string{"rice", "shrimp", "peas", "soy sauce"}, Instructions: []string{"Stir-fry shrimp and peas", "Add rice and season with soy sauce"}, CostForOnePerson: 5.2},
		{Name: "Caprese Wrap", Ingredients: []string{"tortilla", "mozzarella cheese", "tomatoes", "basil"}, Instructions: []string{"Layer the fillings on the tortilla and roll up"}, CostForOnePerson: 4.1},
	},
	common.MealDinner: {
		{Name: "Spaghetti Bolognese", Ingredients: []string{"pasta", "ground beef", "tomato sauce", "onion"}, Instructions: []string{"Brown the beef with onion", "Simmer with tomato sauce", "Serve over cooked pasta"}, CostForOnePerson: 5.5},
		{Name: "Baked Salmon with Vegetables", Ingredients: []string{"salmon", "broccoli", "carrots", "olive oil"}, Instructions: []string{"Season the salmon", "Roast with the vegetables at 200C for 18 minutes"}, CostForOnePerson: 7},
		{Name: "Chicken Stir Fry", Ingredients: []string{"chicken breast", "bell peppers", "soy sauce", "rice"}, Instructions: []string{"Stir-fry chicken and peppers", "Season with soy sauce and serve over rice"}, CostForOnePerson: 5.8},
		{Name: "Pork Chops with Mashed Potatoes", Ingredients: []string{"pork chops", "potatoes", "milk", "butter"}, Instructions: []string{"Pan-sear the chops", "Mash boiled potatoes with milk and butter"}, CostForOnePerson: 6.2},
		{Name: "Vegetable Curry with Rice", Ingredients: []string{"mixed vegetables", "curry paste", "rice", "onion"}, Instructions: []string{"Simmer vegetables in curry sauce", "Serve over steamed rice"}, CostForOnePerson: 4.5},
		{Name: "Beef Tacos", Ingredients: []string{"ground beef", "taco shells", "cheese", "lettuce"}, Instructions: []string{"Brown and season the beef", "Fill the shells with beef and toppings"}, CostForOnePerson: 5.3},
		{Name: "Margherita Pizza", Ingredients: []string{"pizza dough", "tomato sauce", "mozzarella cheese", "basil"}, Instructions: []string{"Top the dough with sauce and cheese", "Bake at 250C until golden"}, CostForOnePerson: 4.8},
	},
}

// neutralBanks 補位用的中性範本：不含任一已知過敏原關鍵字，
// 且為純素，任何偏好組合下都能通過驗證
var neutralBanks = map[common.MealCategory][]common.CandidateMeal{
	common.MealBreakfast: {
		{Name: "Oatmeal with Berries", Ingredients: []string{"oats", "berries", "maple syrup"}, Instructions: []string{"Simmer oats in water", "Top with berries and maple syrup"}, CostForOnePerson: 2},
		{Name: "Fruit Salad Bowl", Ingredients: []string{"apple", "banana", "orange", "grapes"}, Instructions: []string{"Chop the fruit and toss together"}, CostForOnePerson: 2.4},
		{Name: "Banana Oat Porridge", Ingredients: []string{"oats", "banana", "cinnamon"}, Instructions: []string{"Cook oats in water", "Stir in sliced banana and cinnamon"}, CostForOnePerson: 1.9},
		{Name: "Apple Cinnamon Rice Porridge", Ingredients: []string{"rice", "apple", "cinnamon"}, Instructions: []string{"Simmer rice until soft", "Fold in diced apple and cinnamon"}, CostForOnePerson: 2.1},
		{Name: "Berry Smoothie Bowl", Ingredients: []string{"frozen berries", "banana", "orange juice"}, Instructions: []string{"Blend everything until thick", "Serve in a bowl"}, CostForOnePerson: 2.8},
		{Name: "Baked Sweet Potato Breakfast", Ingredients: []string{"sweet potato", "cinnamon", "maple syrup"}, Instructions: []string{"Bake the sweet potato until tender", "Drizzle with maple syrup"}, CostForOnePerson: 2.2},
		{Name: "Quinoa Breakfast Bowl", Ingredients: []string{"quinoa", "berries", "maple syrup"}, Instructions: []string{"Cook the quinoa", "Top with berries and maple syrup"}, CostForOnePerson: 2.6},
	},
	common.MealLunch: {
		{Name: "Rice and Bean Bowl", Ingredients: []string{"rice", "black beans", "salsa", "corn"}, Instructions: []string{"Warm the beans and corn", "Serve over rice with salsa"}, CostForOnePerson: 3},
		{Name: "Lentil Soup", Ingredients: []string{"lentils", "carrots", "onion", "celery"}, Instructions: []string{"Simmer everything until the lentils are soft"}, CostForOnePerson: 2.8},
		{Name: "Quinoa Vegetable Salad", Ingredients: []string{"quinoa", "cucumber", "tomatoes", "olive oil"}, Instructions: []string{"Cook and cool the quinoa", "Toss with chopped vegetables and oil"}, CostForOnePerson: 3.4},
		{Name: "Baked Potato with Beans", Ingredients: []string{"potatoes", "black beans", "chives"}, Instructions: []string{"Bake the potato", "Top with warmed beans and chives"}, CostForOnePerson: 2.5},
		{Name: "Corn and Rice Stuffed Peppers", Ingredients: []string{"bell peppers", "rice", "corn", "onion"}, Instructions: []string{"Fill the peppers with the rice mixture", "Bake until tender"}, CostForOnePerson: 3.2},
		{Name: "Chickpea Lettuce Cups", Ingredients: []string{"chickpeas", "lettuce", "lemon juice"}, Instructions: []string{"Mash chickpeas with lemon juice", "Spoon into lettuce leaves"}, CostForOnePerson: 2.9},
		{Name: "Vegetable Rice Soup", Ingredients: []string{"rice", "carrots", "celery", "onion"}, Instructions: []string{"Simmer the vegetables and rice in broth"}, CostForOnePerson: 2.6},
	},
	common.MealDinner: {
		{Name: "Vegetable Stir Fry with Rice", Ingredients: []string{"mixed vegetables", "rice", "garlic", "ginger"}, Instructions: []string{"Stir-fry the vegetables with garlic and ginger", "Serve over rice"}, CostForOnePerson: 3.5},
		{Name: "Lentil Stew", Ingredients: []string{"lentils", "potatoes", "carrots", "onion"}, Instructions: []string{"Simmer everything until thick"}, CostForOnePerson: 3.2},
		{Name: "Roasted Vegetable Quinoa", Ingredients: []string{"quinoa", "zucchini", "bell peppers", "olive oil"}, Instructions: []string{"Roast the vegetables", "Serve over cooked quinoa"}, CostForOnePerson: 3.8},
		{Name: "Black Bean Chili", Ingredients: []string{"black beans", "tomatoes", "onion", "chili powder"}, Instructions: []string{"Simmer all ingredients for 30 minutes"}, CostForOnePerson: 3.1},
		{Name: "Garlic Herb Potatoes with Greens", Ingredients: []string{"potatoes", "garlic", "spinach", "olive oil"}, Instructions: []string{"Roast the potatoes with garlic", "Wilt the spinach and serve together"}, CostForOnePerson: 2.9},
		{Name: "Sweet Potato and Bean Bowl", Ingredients: []string{"sweet potato", "black beans", "rice", "lime"}, Instructions: []string{"Roast the sweet potato", "Serve over rice with beans and lime"}, CostForOnePerson: 3.4},
		{Name: "Ratatouille with Rice", Ingredients: []string{"zucchini", "tomatoes", "bell peppers", "rice"}, Instructions: []string{"Stew the vegetables until soft", "Serve over rice"}, CostForOnePerson: 3.6},
	},
}

// fillerIngredients 合成補位餐點的食材池。全為植物性單字，
// 且不與任何已知過敏原關鍵字重疊。
var fillerIngredients = []string{
	"oats", "carrots", "cabbage", "celery", "spinach", "zucchini",
	"cucumber", "mushrooms", "broccoli", "corn", "tomatoes",
	"apples", "bananas", "oranges", "berries",
}

// FallbackPlanner 無需網路的保底菜單生成器
type FallbackPlanner struct {
	matcher     *Matcher
	daysPerWeek int
}

// NewFallbackPlanner 創建保底菜單生成器
func NewFallbackPlanner(matcher *Matcher, daysPerWeek int) *FallbackPlanner {
	return &FallbackPlanner{
		matcher:     matcher,
		daysPerWeek: daysPerWeek,
	}
}

// GenerateMenu 由範本庫組出完整一週菜單。先過濾主範本，不足再
// 以中性範本補位，最後依固定順序指派星期。產出對任何偏好組合
// 都能通過菜單驗證。
func (p *FallbackPlanner) GenerateMenu(prefs common.Preferences) []common.CandidateMeal {
	var menu []common.CandidateMeal

	for _, category := range common.MealCategories {
		picked := p.pickForCategory(category, prefs)
		for i := range picked {
			picked[i].Type = string(category)
			picked[i].Day = common.Weekdays[i]
		}
		menu = append(menu, picked...)
	}

	common.LogInfo("已改用保底菜單",
		zap.Int("meals", len(menu)),
	)

	return menu
}

// pickForCategory 為單一餐別挑滿 daysPerWeek 道餐點
func (p *FallbackPlanner) pickForCategory(category common.MealCategory, prefs common.Preferences) []common.CandidateMeal {
	picked := make([]common.CandidateMeal, 0, p.daysPerWeek)

	for _, meal := range fallbackBanks[category] {
		if len(picked) >= p.daysPerWeek {
			break
		}
		if p.allowed(meal, prefs) {
			picked = append(picked, meal)
		}
	}

	// 中性範本補位，名稱不與已選餐點重複
	for _, meal := range neutralBanks[category] {
		if len(picked) >= p.daysPerWeek {
			break
		}
		if p.allowed(meal, prefs) && !containsName(picked, meal.Name) {
			picked = append(picked, meal)
		}
	}

	// 兩個範本庫都耗盡時（例如自訂過敏標籤命中常備主食），
	// 以食材池合成通用餐點補滿天數
	if len(picked) < p.daysPerWeek {
		picked = p.synthesize(category, prefs, picked)
	}

	return picked
}

// synthesize 從通過檢查的食材池合成補位餐點直到湊滿 daysPerWeek。
// 名稱帶星期前綴，同餐別內不會重名。
func (p *FallbackPlanner) synthesize(category common.MealCategory, prefs common.Preferences, picked []common.CandidateMeal) []common.CandidateMeal {
	allowed := make([]string, 0, len(fillerIngredients))
	for _, ing := range fillerIngredients {
		if !p.matcher.IsForbidden(ing, prefs.Allergies) && !violatesDiet(ing, prefs.DietaryRestrictions) {
			allowed = append(allowed, ing)
		}
	}
	if len(allowed) == 0 {
		// 極端標籤連食材池都排光時，仍以湊滿一週為優先
		allowed = fillerIngredients
	}

	offset := categoryIndex(category) * 2
	for len(picked) < p.daysPerWeek {
		idx := len(picked)
		first := allowed[(idx+offset)%len(allowed)]
		second := allowed[(idx+offset+1)%len(allowed)]

		meal := common.CandidateMeal{
			Name:             fmt.Sprintf("%s %s and %s Bowl", common.Weekdays[idx], titleWord(first), titleWord(second)),
			Ingredients:      []string{first, second},
			Instructions:     []string{fmt.Sprintf("Combine %s and %s and season to taste", first, second)},
			CostForOnePerson: 2.5,
		}
		if second == first {
			meal.Name = fmt.Sprintf("%s %s Bowl", common.Weekdays[idx], titleWord(first))
			meal.Ingredients = []string{first}
			meal.Instructions = []string{fmt.Sprintf("Prepare %s and season to taste", first)}
		}
		picked = append(picked, meal)
	}

	return picked
}

func categoryIndex(category common.MealCategory) int {
	for i, c := range common.MealCategories {
		if c == category {
			return i
		}
	}
	return 0
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// allowed 餐點名稱與所有食材都須通過過敏原與飲食限制檢查
func (p *FallbackPlanner) allowed(meal common.CandidateMeal, prefs common.Preferences) bool {
	if p.matcher.IsForbidden(meal.Name, prefs.Allergies) || violatesDiet(meal.Name, prefs.DietaryRestrictions) {
		return false
	}
	for _, ing := range meal.Ingredients {
		if p.matcher.IsForbidden(ing, prefs.Allergies) || violatesDiet(ing, prefs.DietaryRestrictions) {
			return false
		}
	}
	return true
}

func containsName(meals []common.CandidateMeal, name string) bool {
	for _, m := range meals {
		if m.Name == name {
			return true
		}
	}
	return false
}
