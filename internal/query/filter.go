package query

import (
	"strings"

	"github.com/pageza/recipe-explorer/backend/internal/model"
)

// Field identifies a filterable recipe attribute independently of how a
// storage backend names it.
type Field string

const (
	FieldTitle        Field = "title"
	FieldCuisine      Field = "cuisine"
	FieldRating       Field = "rating"
	FieldTotalTime    Field = "total_time"
	FieldCaloriesKcal Field = "nutrients.calories_kcal"
)

// ClauseKind selects the matching semantics of a Clause.
type ClauseKind int

const (
	// Contains is a case-insensitive literal substring match.
	Contains ClauseKind = iota
	// EqualFold is a case-insensitive whole-string match.
	EqualFold
	// Range is a numeric comparison against a Constraint.
	Range
)

func (k ClauseKind) String() string {
	switch k {
	case Contains:
		return "contains"
	case EqualFold:
		return "equal_fold"
	case Range:
		return "range"
	default:
		return "unknown"
	}
}

// Clause is one field-scoped test. Text is set for Contains and EqualFold,
// Constraint for Range.
type Clause struct {
	Field      Field      `json:"field"`
	Kind       ClauseKind `json:"kind"`
	Text       string     `json:"text,omitempty"`
	Constraint Constraint `json:"constraint,omitempty"`
}

// Predicate is a conjunction of clauses. The zero value matches everything.
type Predicate struct {
	Clauses []Clause `json:"clauses"`
}

// Empty reports whether the predicate has no clauses.
func (p Predicate) Empty() bool {
	return len(p.Clauses) == 0
}

// FilterInput carries the raw, optional filter strings as a user typed them.
type FilterInput struct {
	Title     string `json:"title" schema:"title"`
	Cuisine   string `json:"cuisine" schema:"cuisine"`
	Rating    string `json:"rating" schema:"rating"`
	TotalTime string `json:"total_time" schema:"total_time"`
	Calories  string `json:"calories" schema:"calories"`
}

// Active reports whether any filter field holds a non-blank value.
func (f FilterInput) Active() bool {
	for _, v := range []string{f.Title, f.Cuisine, f.Rating, f.TotalTime, f.Calories} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

type clauseBuilder func(field Field, raw string) (Clause, bool)

func textClause(kind ClauseKind) clauseBuilder {
	return func(field Field, raw string) (Clause, bool) {
		if strings.TrimSpace(raw) == "" {
			return Clause{}, false
		}
		return Clause{Field: field, Kind: kind, Text: raw}, true
	}
}

func rangeClause(field Field, raw string) (Clause, bool) {
	c, ok := Parse(raw)
	if !ok {
		return Clause{}, false
	}
	return Clause{Field: field, Kind: Range, Constraint: c}, true
}

// Compile folds the filter input into a Predicate. Fields are visited in a
// fixed order so equal inputs always produce equal predicates.
func Compile(in FilterInput) Predicate {
	steps := []struct {
		field Field
		raw   string
		build clauseBuilder
	}{
		{FieldTitle, in.Title, textClause(Contains)},
		{FieldCuisine, in.Cuisine, textClause(EqualFold)},
		{FieldRating, in.Rating, rangeClause},
		{FieldTotalTime, in.TotalTime, rangeClause},
		{FieldCaloriesKcal, in.Calories, rangeClause},
	}

	var p Predicate
	for _, s := range steps {
		if c, ok := s.build(s.field, s.raw); ok {
			p.Clauses = append(p.Clauses, c)
		}
	}
	return p
}

// Matches evaluates the predicate against a recipe in process. Storage
// backends translate the same clauses natively and must agree with it.
func (p Predicate) Matches(r *model.Recipe) bool {
	for _, c := range p.Clauses {
		if !c.matches(r) {
			return false
		}
	}
	return true
}

func (c Clause) matches(r *model.Recipe) bool {
	switch c.Kind {
	case Contains:
		s, ok := textValue(r, c.Field)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(c.Text))
	case EqualFold:
		s, ok := textValue(r, c.Field)
		return ok && strings.EqualFold(s, c.Text)
	case Range:
		v := numberValue(r, c.Field)
		return v != nil && c.Constraint.Holds(*v)
	default:
		return false
	}
}

func textValue(r *model.Recipe, f Field) (string, bool) {
	switch f {
	case FieldTitle:
		return r.Title, true
	case FieldCuisine:
		if r.Cuisine == nil {
			return "", false
		}
		return *r.Cuisine, true
	default:
		return "", false
	}
}

func numberValue(r *model.Recipe, f Field) *float64 {
	switch f {
	case FieldRating:
		return r.Rating
	case FieldTotalTime:
		return r.TotalTime
	case FieldCaloriesKcal:
		return r.Nutrients.CaloriesKcal
	default:
		return nil
	}
}
