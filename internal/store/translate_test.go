package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipe-explorer/backend/internal/query"
)

func TestWhereConditions(t *testing.T) {
	conds, err := whereConditions(query.Compile(query.FilterInput{
		Title:    "50%_Off",
		Cuisine:  "Thai",
		Calories: "<=400",
	}))
	require.NoError(t, err)
	require.Len(t, conds, 3)

	assert.Equal(t, `LOWER(title) LIKE ? ESCAPE '\'`, conds[0].sql)
	assert.Equal(t, []interface{}{`%50\%\_off%`}, conds[0].args)
	assert.Equal(t, "LOWER(cuisine) = ?", conds[1].sql)
	assert.Equal(t, []interface{}{"thai"}, conds[1].args)
	assert.Equal(t, "nutrients_calories_kcal <= ?", conds[2].sql)
	assert.Equal(t, []interface{}{400.0}, conds[2].args)
}

func TestWhereConditionsRejectsUnknownField(t *testing.T) {
	_, err := whereConditions(query.Predicate{Clauses: []query.Clause{{Field: "serves", Kind: query.Contains, Text: "4"}}})
	assert.ErrorIs(t, err, ErrUnsupportedClause)
}

func TestFilterBSON(t *testing.T) {
	filter, err := filterBSON(query.Compile(query.FilterInput{
		Title:   "pie.",
		Cuisine: "Southern Recipes",
		Rating:  ">=4.5",
	}))
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "title", Value: primitive.Regex{Pattern: `pie\.`, Options: "i"}},
		{Key: "cuisine", Value: primitive.Regex{Pattern: `^Southern Recipes\z`, Options: "i"}},
		{Key: "rating", Value: bson.M{"$gte": 4.5}},
	}, filter)
}

func TestFilterBSONEmpty(t *testing.T) {
	filter, err := filterBSON(query.Predicate{})
	require.NoError(t, err)
	assert.Empty(t, filter)
}

func TestFilterBSONRejectsUnknownOperator(t *testing.T) {
	_, err := filterBSON(query.Predicate{Clauses: []query.Clause{{
		Field: query.FieldRating, Kind: query.Range, Constraint: query.Constraint{Op: "ne", Value: 1},
	}}})
	assert.ErrorIs(t, err, ErrUnsupportedClause)
}
