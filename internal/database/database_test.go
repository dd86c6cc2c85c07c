package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealfinder/backend/config"
	"github.com/pageza/mealfinder/backend/internal/model"
	"github.com/pageza/mealfinder/backend/internal/types"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	cfg := config.Defaults()
	cfg.Environment = config.Test
	cfg.DBPath = filepath.Join(t.TempDir(), "history.db")

	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, RunMigrations(db))
	assert.True(t, db.Migrator().HasTable(&model.SearchLog{}))
	assert.NoError(t, HealthCheck(context.Background(), db))

	entry := model.SearchLog{
		SessionID: "s1",
		Query:     "egg, milk",
		Term:      "egg",
		Outcome:   types.OutcomeSuccess,
		RecipeIDs: model.JSONBStringArray{"1", "2"},
	}
	require.NoError(t, db.Create(&entry).Error)

	var got model.SearchLog
	require.NoError(t, db.First(&got, "id = ?", entry.ID).Error)
	assert.Equal(t, model.JSONBStringArray{"1", "2"}, got.RecipeIDs)

	require.NoError(t, RollbackMigrations(db))
	assert.False(t, db.Migrator().HasTable(&model.SearchLog{}))
}

func TestNewUnsupportedDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.DBDriver = "mysql"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewRedisClientBadURL(t *testing.T) {
	cfg := config.Defaults()
	cfg.RedisURL = "://not-a-url"

	_, err := NewRedisClient(cfg)
	assert.Error(t, err)
}
