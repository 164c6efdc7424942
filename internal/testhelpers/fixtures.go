// Package testhelpers provides databases and fixtures shared by tests.
package testhelpers

import (
	"fmt"

	"github.com/pageza/recipe-explorer/backend/internal/model"
)

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// Num returns a pointer to f.
func Num(f float64) *float64 { return &f }

// Catalog returns a small hand-written catalog covering the text, range and
// calorie filter cases. Ids are fixed so ordering assertions are stable.
func Catalog() []model.Recipe {
	return []model.Recipe{
		{
			ID:        "00000000-0000-0000-0000-000000000001",
			Title:     "Apple Pie",
			Cuisine:   Str("American"),
			Rating:    Num(4.8),
			TotalTime: Num(90),
			Nutrients: model.Nutrients{Calories: Str("350 kcal"), CaloriesKcal: Num(350)},
		},
		{
			ID:        "00000000-0000-0000-0000-000000000002",
			Title:     "PIE crust",
			Cuisine:   Str("Baking"),
			Rating:    Num(4.5),
			TotalTime: Num(30),
			Nutrients: model.Nutrients{Calories: Str("450 calories"), CaloriesKcal: Num(450)},
		},
		{
			ID:        "00000000-0000-0000-0000-000000000003",
			Title:     "Piecrust",
			Cuisine:   Str("Baking"),
			Rating:    Num(4.4),
			TotalTime: Num(25),
			Nutrients: model.Nutrients{Calories: Str("120 kcal"), CaloriesKcal: Num(120)},
		},
		{
			ID:        "00000000-0000-0000-0000-000000000004",
			Title:     "Fried Chicken",
			Cuisine:   Str("southern recipes"),
			Rating:    Num(4.6),
			TotalTime: Num(60),
			Nutrients: model.Nutrients{Calories: Str("600 kcal"), CaloriesKcal: Num(600)},
		},
		{
			ID:        "00000000-0000-0000-0000-000000000005",
			Title:     "Shrimp and Grits",
			Cuisine:   Str("Southern"),
			Rating:    Num(4.2),
			TotalTime: Num(45),
			Nutrients: model.Nutrients{Calories: Str("500 kcal"), CaloriesKcal: Num(500)},
		},
		{
			ID:    "00000000-0000-0000-0000-000000000006",
			Title: "100% Whole_Wheat Bread",
		},
	}
}

// Numbered returns n recipes titled "Recipe 01".. with distinct ratings so
// the sort order is fully determined.
func Numbered(n int) []model.Recipe {
	recipes := make([]model.Recipe, n)
	for i := range recipes {
		recipes[i] = model.Recipe{
			ID:     fmt.Sprintf("10000000-0000-0000-0000-%012d", i+1),
			Title:  fmt.Sprintf("Recipe %02d", i+1),
			Rating: Num(5 - float64(i)*0.1),
		}
	}
	return recipes
}
