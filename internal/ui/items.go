package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/charlesng35/favorites/internal/models"
)

var _ list.Item = favoriteItem{}

// favoriteItem wraps [models.Favorite] to implement [list.Item].
type favoriteItem struct {
	favorite models.Favorite
}

func (i favoriteItem) FilterValue() string { return i.favorite.Title }

func (i favoriteItem) Title() string {
	return fmt.Sprintf("%s  [%s]", i.favorite.Title, i.favorite.Type.Label())
}

func (i favoriteItem) Description() string {
	f := i.favorite
	parts := []string{"Directed by " + f.Director, f.YearTime, f.Duration, f.Budget, f.Location}
	desc := strings.Join(parts, " • ")
	if f.Description != nil && *f.Description != "" {
		desc += " • " + *f.Description
	}
	return desc
}

func toItems(favorites []models.Favorite) []list.Item {
	items := make([]list.Item, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, favoriteItem{favorite: f})
	}
	return items
}
