package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/favorites/internal/models"
)

func favorite(id uint, title string) models.Favorite {
	f := models.Favorite{Title: title, Type: models.FavoriteTypeMovie}
	f.ID = id
	return f
}

func cursor(v uint) *uint { return &v }

func titles(s *State) []string {
	out := make([]string, 0, len(s.Favorites))
	for _, f := range s.Favorites {
		out = append(out, f.Title)
	}
	return out
}

func TestBeginLoadGuardsInFlightRequests(t *testing.T) {
	s := New()
	require.True(t, s.BeginLoad())
	require.False(t, s.BeginLoad())
	require.False(t, s.LoadingMore())

	s.ApplyPage(nil, []models.Favorite{favorite(1, "a")}, cursor(1))
	require.False(t, s.Loading)
	require.True(t, s.BeginLoad())
	require.True(t, s.LoadingMore())
}

func TestApplyPageReplacesOrAppends(t *testing.T) {
	s := New()
	s.BeginLoad()
	s.ApplyPage(nil, []models.Favorite{favorite(1, "a"), favorite(2, "b")}, cursor(2))
	require.Equal(t, []string{"a", "b"}, titles(s))
	require.Equal(t, uint(2), *s.NextCursor)

	s.BeginLoad()
	s.ApplyPage(cursor(2), []models.Favorite{favorite(3, "c")}, nil)
	require.Equal(t, []string{"a", "b", "c"}, titles(s))
	require.Nil(t, s.NextCursor)

	s.BeginLoad()
	s.ApplyPage(nil, []models.Favorite{favorite(9, "z")}, nil)
	require.Equal(t, []string{"z"}, titles(s))
}

func TestFailLoadKeepsRows(t *testing.T) {
	s := New()
	s.BeginLoad()
	s.ApplyPage(nil, []models.Favorite{favorite(1, "a")}, cursor(1))

	s.BeginLoad()
	s.FailLoad(errors.New("network down"))
	require.False(t, s.Loading)
	require.EqualError(t, s.Err, "network down")
	require.Equal(t, []string{"a"}, titles(s))
	require.Equal(t, uint(1), *s.NextCursor)

	s.BeginLoad()
	s.ApplyPage(cursor(1), nil, nil)
	require.NoError(t, s.Err)
}

func TestMutations(t *testing.T) {
	s := New()
	s.ApplyPage(nil, []models.Favorite{favorite(1, "a"), favorite(2, "b")}, nil)

	s.Prepend(favorite(3, "c"))
	require.Equal(t, []string{"c", "a", "b"}, titles(s))

	require.True(t, s.Patch(1, favorite(1, "a2")))
	require.False(t, s.Patch(42, favorite(42, "x")))
	require.Equal(t, []string{"c", "a2", "b"}, titles(s))

	s.Fail(errors.New("Favorite not found"))
	require.True(t, s.Remove(3))
	require.NoError(t, s.Err)
	require.False(t, s.Remove(3))
	require.Equal(t, []string{"a2", "b"}, titles(s))
}

func TestShouldLoadMore(t *testing.T) {
	s := New()
	rows := make([]models.Favorite, 0, 10)
	for i := uint(1); i <= 10; i++ {
		rows = append(rows, favorite(i, "f"))
	}
	s.ApplyPage(nil, rows, cursor(10))

	require.False(t, s.ShouldLoadMore(5, 3))
	require.True(t, s.ShouldLoadMore(6, 3))
	require.True(t, s.ShouldLoadMore(9, 3))

	s.BeginLoad()
	require.False(t, s.ShouldLoadMore(9, 3))

	s.ApplyPage(cursor(10), nil, nil)
	require.False(t, s.ShouldLoadMore(9, 3))
}
