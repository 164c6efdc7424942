package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-explorer/backend/config"
	"github.com/pageza/recipe-explorer/backend/internal/database"
)

// Open connects to the backend selected by cfg, prepares its schema and
// wraps it in the Redis cache when cfg.RedisURL is set. The returned close
// function releases every connection that was opened.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (RecipeStore, func() error, error) {
	var (
		s       RecipeStore
		closers []func() error
	)
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, err := database.NewMongoClient(ctx, cfg.MongoURI, log)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() error { return client.Disconnect(context.Background()) })

		ms := NewMongoStore(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection))
		if err := ms.EnsureIndexes(ctx); err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		s = ms
	default:
		db, err := database.New(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("error getting database handle: %w", err)
		}
		closers = append(closers, sqlDB.Close)

		if err := database.Migrate(db); err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		s = NewSQLStore(db)
	}

	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		closers = append(closers, rdb.Close)
		s = NewCachedStore(s, rdb, cfg.CacheTTL, log)
	}

	return s, closeAll, nil
}
