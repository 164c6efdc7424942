package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/recipe-explorer/backend/internal/metrics"
	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
)

const insertBatchSize = 500

var sqlColumns = map[query.Field]string{
	query.FieldTitle:        "title",
	query.FieldCuisine:      "cuisine",
	query.FieldRating:       "rating",
	query.FieldTotalTime:    "total_time",
	query.FieldCaloriesKcal: "nutrients_calories_kcal",
}

var sqlOps = map[query.Op]string{
	query.OpLT:  "<",
	query.OpLTE: "<=",
	query.OpGT:  ">",
	query.OpGTE: ">=",
	query.OpEQ:  "=",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SQLStore runs queries through gorm against postgres or sqlite.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore creates a store over an open, migrated database.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) backend() string {
	return s.db.Dialector.Name()
}

type condition struct {
	sql  string
	args []interface{}
}

func whereConditions(p query.Predicate) ([]condition, error) {
	conds := make([]condition, 0, len(p.Clauses))
	for _, c := range p.Clauses {
		col, ok := sqlColumns[c.Field]
		if !ok {
			return nil, fmt.Errorf("%w: field %q", ErrUnsupportedClause, c.Field)
		}

		switch c.Kind {
		case query.Contains:
			pattern := "%" + likeEscaper.Replace(strings.ToLower(c.Text)) + "%"
			conds = append(conds, condition{
				sql:  fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col),
				args: []interface{}{pattern},
			})
		case query.EqualFold:
			conds = append(conds, condition{
				sql:  fmt.Sprintf("LOWER(%s) = ?", col),
				args: []interface{}{strings.ToLower(c.Text)},
			})
		case query.Range:
			op, ok := sqlOps[c.Constraint.Op]
			if !ok {
				return nil, fmt.Errorf("%w: operator %q", ErrUnsupportedClause, c.Constraint.Op)
			}
			conds = append(conds, condition{
				sql:  fmt.Sprintf("%s %s ?", col, op),
				args: []interface{}{c.Constraint.Value},
			})
		default:
			return nil, fmt.Errorf("%w: kind %s", ErrUnsupportedClause, c.Kind)
		}
	}
	return conds, nil
}

func scopeConditions(conds []condition) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range conds {
			db = db.Where(c.sql, c.args...)
		}
		return db
	}
}

// Find implements RecipeStore.
func (s *SQLStore) Find(ctx context.Context, p query.Predicate, w query.Window) (res Result, err error) {
	defer func(start time.Time) {
		metrics.ObserveStoreQuery(s.backend(), "find", start, err)
	}(time.Now())

	conds, err := whereConditions(p)
	if err != nil {
		return Result{}, err
	}
	scope := scopeConditions(conds)

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Scopes(scope).Count(&total).Error; err != nil {
		return Result{}, fmt.Errorf("failed to count recipes: %w", err)
	}

	data := make([]model.Recipe, 0, w.Limit)
	err = s.db.WithContext(ctx).
		Scopes(scope).
		Order("rating IS NULL").
		Order("rating DESC").
		Order("id ASC").
		Offset(w.Offset()).
		Limit(w.Limit).
		Find(&data).Error
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	return Result{Data: data, Total: total}, nil
}

// Replace implements RecipeStore. The delete and the inserts share one
// transaction.
func (s *SQLStore) Replace(ctx context.Context, recipes []model.Recipe) (err error) {
	defer func(start time.Time) {
		metrics.ObserveStoreQuery(s.backend(), "replace", start, err)
	}(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Recipe{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipes: %w", err)
		}
		if len(recipes) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(recipes, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert recipes: %w", err)
		}
		return nil
	})
}

// Ping implements RecipeStore.
func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
