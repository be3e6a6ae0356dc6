package models

// FavoriteType enumerates the kinds of titles that can be stored.
type FavoriteType string

const (
	FavoriteTypeMovie  FavoriteType = "MOVIE"
	FavoriteTypeTVShow FavoriteType = "TV_SHOW"
)

// FavoriteTypes lists the accepted values in display order.
func FavoriteTypes() []FavoriteType {
	return []FavoriteType{FavoriteTypeMovie, FavoriteTypeTVShow}
}

// Valid reports whether t is one of the known favorite types.
func (t FavoriteType) Valid() bool {
	switch t {
	case FavoriteTypeMovie, FavoriteTypeTVShow:
		return true
	default:
		return false
	}
}

// Label returns a human readable name.
func (t FavoriteType) Label() string {
	switch t {
	case FavoriteTypeMovie:
		return "Movie"
	case FavoriteTypeTVShow:
		return "TV Show"
	default:
		return string(t)
	}
}

// Favorite is a single movie or TV show entry.
type Favorite struct {
	BaseModel

	Title       string       `gorm:"not null" json:"title"`
	Type        FavoriteType `gorm:"type:varchar(16);not null" json:"type"`
	Director    string       `gorm:"not null" json:"director"`
	Budget      string       `gorm:"not null" json:"budget"`
	Location    string       `gorm:"not null" json:"location"`
	Duration    string       `gorm:"not null" json:"duration"`
	YearTime    string       `gorm:"column:year_time;not null" json:"yearTime"`
	Description *string      `json:"description"`
}

// TableName pins the table name used by every driver.
func (Favorite) TableName() string {
	return "favorites"
}
