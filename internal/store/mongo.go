package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pageza/recipe-explorer/backend/internal/metrics"
	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
)

const mongoBackend = "mongo"

var mongoOps = map[query.Op]string{
	query.OpLT:  "$lt",
	query.OpLTE: "$lte",
	query.OpGT:  "$gt",
	query.OpGTE: "$gte",
	query.OpEQ:  "$eq",
}

// MongoStore runs queries against a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over coll.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// EnsureIndexes creates the indexes backing the sort and the range filters.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "cuisine", Value: 1}}},
		{Keys: bson.D{{Key: "total_time", Value: 1}}},
		{Keys: bson.D{{Key: "nutrients.calories_kcal", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func filterBSON(p query.Predicate) (bson.D, error) {
	filter := bson.D{}
	for _, c := range p.Clauses {
		field := string(c.Field)

		switch c.Kind {
		case query.Contains:
			filter = append(filter, bson.E{Key: field, Value: primitive.Regex{
				Pattern: regexp.QuoteMeta(c.Text),
				Options: "i",
			}})
		case query.EqualFold:
			filter = append(filter, bson.E{Key: field, Value: primitive.Regex{
				Pattern: "^" + regexp.QuoteMeta(c.Text) + `\z`,
				Options: "i",
			}})
		case query.Range:
			op, ok := mongoOps[c.Constraint.Op]
			if !ok {
				return nil, fmt.Errorf("%w: operator %q", ErrUnsupportedClause, c.Constraint.Op)
			}
			filter = append(filter, bson.E{Key: field, Value: bson.M{op: c.Constraint.Value}})
		default:
			return nil, fmt.Errorf("%w: kind %s", ErrUnsupportedClause, c.Kind)
		}
	}
	return filter, nil
}

// Find implements RecipeStore.
func (m *MongoStore) Find(ctx context.Context, p query.Predicate, w query.Window) (res Result, err error) {
	defer func(start time.Time) {
		metrics.ObserveStoreQuery(mongoBackend, "find", start, err)
	}(time.Now())

	filter, err := filterBSON(p)
	if err != nil {
		return Result{}, err
	}

	total, err := m.coll.CountDocuments(ctx, filter)
	if err != nil {
		return Result{}, fmt.Errorf("failed to count recipes: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(w.Offset())).
		SetLimit(int64(w.Limit))

	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	data := make([]model.Recipe, 0, w.Limit)
	if err := cur.All(ctx, &data); err != nil {
		return Result{}, fmt.Errorf("failed to decode recipes: %w", err)
	}

	return Result{Data: data, Total: total}, nil
}

// Replace implements RecipeStore. MongoDB offers no transaction outside a
// replica set, so the delete and insert run back to back.
func (m *MongoStore) Replace(ctx context.Context, recipes []model.Recipe) (err error) {
	defer func(start time.Time) {
		metrics.ObserveStoreQuery(mongoBackend, "replace", start, err)
	}(time.Now())

	if _, err := m.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to clear recipes: %w", err)
	}
	if len(recipes) == 0 {
		return nil
	}

	docs := make([]interface{}, len(recipes))
	for i := range recipes {
		if recipes[i].ID == "" {
			recipes[i].ID = uuid.NewString()
		}
		docs[i] = recipes[i]
	}

	if _, err := m.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert recipes: %w", err)
	}
	return nil
}

// Ping implements RecipeStore.
func (m *MongoStore) Ping(ctx context.Context) error {
	return m.coll.Database().Client().Ping(ctx, readpref.Primary())
}
