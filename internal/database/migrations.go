package database

import (
	"gorm.io/gorm"

	"github.com/charlesng35/favorites/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Favorite{},
	)
}

// SeedFavorites returns the entries inserted into an empty store.
func SeedFavorites() []models.Favorite {
	inceptionDesc := "Mind-bending heist within dreams"
	breakingBadDesc := "Chemistry teacher becomes meth kingpin"

	return []models.Favorite{
		{
			Title:       "Inception",
			Type:        models.FavoriteTypeMovie,
			Director:    "Christopher Nolan",
			Budget:      "$160M",
			Location:    "Los Angeles, Paris",
			Duration:    "148 min",
			YearTime:    "2010",
			Description: &inceptionDesc,
		},
		{
			Title:       "Breaking Bad",
			Type:        models.FavoriteTypeTVShow,
			Director:    "Vince Gilligan",
			Budget:      "$3M per episode",
			Location:    "Albuquerque",
			Duration:    "49 min per episode",
			YearTime:    "2008-2013",
			Description: &breakingBadDesc,
		},
	}
}

// SeedData inserts the sample favorites when the table is empty. Existing
// rows are never touched.
func SeedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Favorite{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := SeedFavorites()
	return db.Create(&seed).Error
}
