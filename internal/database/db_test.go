package database

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/favorites/internal/models"
)

func TestOpenSQLiteMemory(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Exec("SELECT 1").Error)
	require.NoError(t, Ping(db))
}

func TestOpenSQLiteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "favorites.sqlite")

	db, err := Open(Config{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, AutoMigrate(db))
	require.FileExists(t, path)
}

func TestOpenInfersDriverFromDSN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.db")

	db, err := Open(Config{DSN: "file:" + path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.Equal(t, "sqlite", db.Dialector.Name())
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported database driver")
}

func TestAutoMigrateAndSeedData(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, AutoMigrateAndSeed(db))

	var favorites []models.Favorite
	require.NoError(t, db.Order("id ASC").Find(&favorites).Error)
	require.Len(t, favorites, 2)
	require.Equal(t, "Inception", favorites[0].Title)
	require.Equal(t, models.FavoriteTypeTVShow, favorites[1].Type)
	require.NotNil(t, favorites[1].Description)

	// Seeding is skipped once rows exist.
	require.NoError(t, SeedData(db))
	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestSeedDataLeavesExistingRows(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, db.Create(&models.Favorite{
		Title: "Heat", Type: models.FavoriteTypeMovie, Director: "Michael Mann",
		Budget: "$60M", Location: "Los Angeles", Duration: "170 min", YearTime: "1995",
	}).Error)

	require.NoError(t, SeedData(db))

	var titles []string
	require.NoError(t, db.Model(&models.Favorite{}).Pluck("title", &titles).Error)
	require.Equal(t, []string{"Heat"}, titles)
}

func TestAutoIncrementIDsAreNotReused(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))

	first := SeedFavorites()[0]
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Delete(&models.Favorite{}, first.ID).Error)

	second := SeedFavorites()[0]
	require.NoError(t, db.Create(&second).Error)
	require.Greater(t, second.ID, first.ID)
}

func TestCloseNil(t *testing.T) {
	require.NoError(t, Close(nil))
	require.Error(t, Ping(nil))
	require.Error(t, AutoMigrateAndSeed(nil))
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := Open(Config{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = Close(db)
	})

	return db
}
