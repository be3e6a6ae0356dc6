// Package view holds the client side list state shown by the terminal UI.
package view

import "github.com/charlesng35/favorites/internal/models"

// State is the ordered list of favorites the client has loaded so far.
// It is only mutated through its methods.
type State struct {
	Favorites  []models.Favorite
	NextCursor *uint
	Loading    bool
	Loaded     bool
	Err        error
}

// New returns an empty state before the first page is requested.
func New() *State {
	return &State{Favorites: []models.Favorite{}}
}

// BeginLoad marks a page request as in flight. It returns false when one is
// already running, in which case the caller must not issue another.
func (s *State) BeginLoad() bool {
	if s.Loading {
		return false
	}
	s.Loading = true
	return true
}

// LoadingMore reports whether a follow-up page is in flight.
func (s *State) LoadingMore() bool {
	return s.Loading && s.Loaded
}

// ApplyPage stores a page fetched with cursor. A nil cursor replaces the list,
// otherwise the rows are appended.
func (s *State) ApplyPage(cursor *uint, rows []models.Favorite, next *uint) {
	if cursor == nil {
		s.Favorites = append(make([]models.Favorite, 0, len(rows)), rows...)
	} else {
		s.Favorites = append(s.Favorites, rows...)
	}
	s.NextCursor = next
	s.Loading = false
	s.Loaded = true
	s.Err = nil
}

// FailLoad ends the in-flight request with err and keeps the rows already shown.
func (s *State) FailLoad(err error) {
	s.Loading = false
	s.Err = err
}

// Fail records an error from a create, update or delete.
func (s *State) Fail(err error) {
	s.Err = err
}

// ClearError drops the current error message.
func (s *State) ClearError() {
	s.Err = nil
}

// Prepend inserts a newly created favorite at the top.
func (s *State) Prepend(created models.Favorite) {
	s.Favorites = append([]models.Favorite{created}, s.Favorites...)
	s.Err = nil
}

// Patch replaces the entry with the given id. It reports whether one was found.
func (s *State) Patch(id uint, updated models.Favorite) bool {
	for i := range s.Favorites {
		if s.Favorites[i].ID == id {
			s.Favorites[i] = updated
			s.Err = nil
			return true
		}
	}
	return false
}

// Remove drops the entry with the given id. It reports whether one was found.
func (s *State) Remove(id uint) bool {
	for i := range s.Favorites {
		if s.Favorites[i].ID == id {
			s.Favorites = append(s.Favorites[:i], s.Favorites[i+1:]...)
			s.Err = nil
			return true
		}
	}
	return false
}

// ShouldLoadMore reports whether the row at index is within threshold rows of
// the end while another page exists and nothing is in flight.
func (s *State) ShouldLoadMore(index, threshold int) bool {
	if s.NextCursor == nil || s.Loading {
		return false
	}
	if threshold < 0 {
		threshold = 0
	}
	return index >= len(s.Favorites)-1-threshold
}
