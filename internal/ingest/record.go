package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/recipe-explorer/backend/internal/model"
)

var leadingNumber = regexp.MustCompile(`[0-9.]+`)

// rawRecord is one recipe as it appears in the source file. Numeric fields
// arrive as numbers or as strings, so they are decoded loosely.
type rawRecord struct {
	Title       interface{}            `json:"title"`
	Cuisine     interface{}            `json:"cuisine"`
	Rating      interface{}            `json:"rating"`
	PrepTime    interface{}            `json:"prep_time"`
	CookTime    interface{}            `json:"cook_time"`
	TotalTime   interface{}            `json:"total_time"`
	Description interface{}            `json:"description"`
	Serves      interface{}            `json:"serves"`
	Nutrients   map[string]interface{} `json:"nutrients"`
}

// toNum coerces a number or numeric string. Blank strings and the literals
// nan, null and undefined become nil, as does anything non-finite.
func toNum(v interface{}) *float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		switch s {
		case "", "nan", "null", "undefined":
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// toText keeps strings as they are and renders numbers and booleans.
func toText(v interface{}) *string {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(x)
	default:
		return nil
	}
	return &s
}

// caloriesKcal extracts the first run of digits and dots from a calories
// string such as "389 kcal".
func caloriesKcal(calories *string) *float64 {
	if calories == nil {
		return nil
	}
	m := leadingNumber.FindString(*calories)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &f
}

func (r rawRecord) toRecipe() model.Recipe {
	recipe := model.Recipe{
		ID:          uuid.NewString(),
		Cuisine:     toText(r.Cuisine),
		Rating:      toNum(r.Rating),
		PrepTime:    toNum(r.PrepTime),
		CookTime:    toNum(r.CookTime),
		TotalTime:   toNum(r.TotalTime),
		Description: toText(r.Description),
		Serves:      toText(r.Serves),
	}
	if title := toText(r.Title); title != nil {
		recipe.Title = *title
	}

	n := r.Nutrients
	recipe.Nutrients = model.Nutrients{
		Calories:            toText(n["calories"]),
		CarbohydrateContent: toText(n["carbohydrateContent"]),
		CholesterolContent:  toText(n["cholesterolContent"]),
		FiberContent:        toText(n["fiberContent"]),
		ProteinContent:      toText(n["proteinContent"]),
		SaturatedFatContent: toText(n["saturatedFatContent"]),
		SodiumContent:       toText(n["sodiumContent"]),
		SugarContent:        toText(n["sugarContent"]),
		FatContent:          toText(n["fatContent"]),
	}
	recipe.Nutrients.CaloriesKcal = caloriesKcal(recipe.Nutrients.Calories)

	return recipe
}
