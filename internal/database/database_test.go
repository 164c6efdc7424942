package database

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-explorer/backend/config"
	"github.com/pageza/recipe-explorer/backend/internal/model"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	cfg := config.Default()
	cfg.StorageDriver = config.DriverSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "recipes.db")

	log, hook := test.NewNullLogger()
	db, err := New(cfg, log)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&model.Recipe{}))
	assert.True(t, db.Migrator().HasColumn(&model.Recipe{}, "nutrients_calories_kcal"))
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestNewRejectsMongoDriver(t *testing.T) {
	cfg := config.Default()
	cfg.StorageDriver = config.DriverMongo

	log, _ := test.NewNullLogger()
	_, err := New(cfg, log)
	assert.Error(t, err)
}
