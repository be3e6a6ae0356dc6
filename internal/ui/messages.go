package ui

import (
	"github.com/charlesng35/favorites/internal/client"
	"github.com/charlesng35/favorites/internal/models"
)

// pageLoadedMsg carries the result of a list request made with cursor.
type pageLoadedMsg struct {
	cursor *uint
	page   *client.Page
	err    error
}

// savedMsg reports a create (id == 0) or update.
type savedMsg struct {
	id       uint
	favorite *models.Favorite
	err      error
}

// deletedMsg reports a delete.
type deletedMsg struct {
	id  uint
	err error
}
