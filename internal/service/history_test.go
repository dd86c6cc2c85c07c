package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/mealfinder/backend/internal/database"
	"github.com/pageza/mealfinder/backend/internal/model"
	"github.com/pageza/mealfinder/backend/internal/types"
)

func setupHistoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

func TestHistoryServiceRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	svc := NewHistoryService(setupHistoryDB(t))

	for i, term := range []string{"egg", "milk", "salt"} {
		require.NoError(t, svc.Record(ctx, &model.SearchLog{
			SessionID: "s1",
			Seq:       uint64(i + 1),
			Query:     term,
			Term:      term,
			Outcome:   types.OutcomeEmpty,
		}))
	}
	require.NoError(t, svc.Record(ctx, &model.SearchLog{
		SessionID: "s2",
		Seq:       1,
		Query:     "beef",
		Term:      "beef",
		Outcome:   types.OutcomeSuccess,
		RecipeIDs: model.JSONBStringArray{"52772"},
	}))

	logs, err := svc.Recent(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "salt", logs[0].Term)
	assert.Equal(t, "milk", logs[1].Term)

	logs, err = svc.Recent(ctx, "s2", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.JSONBStringArray{"52772"}, logs[0].RecipeIDs)

	logs, err = svc.Recent(ctx, "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
