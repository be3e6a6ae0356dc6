package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/favorites/internal/handlers/testutil"
	"github.com/charlesng35/favorites/internal/models"
)

type favoritePage struct {
	Data       []models.Favorite `json:"data"`
	NextCursor *uint             `json:"nextCursor"`
}

type issue struct {
	Code     string   `json:"code"`
	Path     []string `json:"path"`
	Message  string   `json:"message"`
	Expected string   `json:"expected"`
	Received string   `json:"received"`
}

type errorBody struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Issues  []issue `json:"issues"`
}

func inceptionPayload() map[string]any {
	return map[string]any{
		"title":    "Inception",
		"type":     "MOVIE",
		"director": "Christopher Nolan",
		"budget":   "$160M",
		"location": "Los Angeles",
		"duration": "148 min",
		"yearTime": "2010",
	}
}

func TestFavoriteLifecycle(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodPost, "/favorites", inceptionPayload())
	testutil.RequireStatus(t, resp, http.StatusCreated)
	created := testutil.DecodeJSON[models.Favorite](t, resp)
	require.Equal(t, uint(1), created.ID)
	require.Equal(t, "Inception", created.Title)
	require.Equal(t, models.FavoriteTypeMovie, created.Type)
	require.Nil(t, created.Description)
	require.Contains(t, resp.Body.String(), `"description":null`)
	require.Contains(t, resp.Body.String(), `"yearTime":"2010"`)

	resp = env.Request(http.MethodGet, "/favorites?take=10", nil)
	testutil.RequireStatus(t, resp, http.StatusOK)
	require.Contains(t, resp.Body.String(), `"nextCursor":null`)
	page := testutil.DecodeJSON[favoritePage](t, resp)
	require.Len(t, page.Data, 1)
	require.Equal(t, uint(1), page.Data[0].ID)
	require.Nil(t, page.NextCursor)

	resp = env.Request(http.MethodPut, "/favorites/1", map[string]any{"budget": "$170M"})
	testutil.RequireStatus(t, resp, http.StatusOK)
	updated := testutil.DecodeJSON[models.Favorite](t, resp)
	require.Equal(t, "$170M", updated.Budget)
	require.Equal(t, created.Title, updated.Title)
	require.Equal(t, created.Type, updated.Type)
	require.Equal(t, created.Director, updated.Director)
	require.Equal(t, created.Location, updated.Location)
	require.Equal(t, created.Duration, updated.Duration)
	require.Equal(t, created.YearTime, updated.YearTime)
	require.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	resp = env.Request(http.MethodGet, "/favorites/1", nil)
	testutil.RequireStatus(t, resp, http.StatusOK)
	require.Equal(t, "$170M", testutil.DecodeJSON[models.Favorite](t, resp).Budget)

	resp = env.Request(http.MethodDelete, "/favorites/1", nil)
	testutil.RequireStatus(t, resp, http.StatusNoContent)
	require.Empty(t, resp.Body.String())

	resp = env.Request(http.MethodGet, "/favorites", nil)
	testutil.RequireStatus(t, resp, http.StatusOK)
	require.JSONEq(t, `{"data":[],"nextCursor":null}`, resp.Body.String())
}

func TestCreateFavoriteValidation(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t)

	payload := inceptionPayload()
	delete(payload, "director")
	payload["type"] = "BOOK"
	payload["budget"] = ""
	payload["yearTime"] = 2010

	resp := env.Request(http.MethodPost, "/favorites", payload)
	testutil.RequireStatus(t, resp, http.StatusBadRequest)
	body := testutil.DecodeJSON[errorBody](t, resp)
	require.Equal(t, "Validation error", body.Message)
	require.Len(t, body.Issues, 4)

	require.Equal(t, []string{"type"}, body.Issues[0].Path)
	require.Equal(t, "invalid_enum_value", body.Issues[0].Code)
	require.Equal(t, []string{"director"}, body.Issues[1].Path)
	require.Equal(t, "Required", body.Issues[1].Message)
	require.Equal(t, []string{"budget"}, body.Issues[2].Path)
	require.Equal(t, "too_small", body.Issues[2].Code)
	require.Equal(t, []string{"yearTime"}, body.Issues[3].Path)
	require.Equal(t, "Expected string, received number", body.Issues[3].Message)

	var count int64
	require.NoError(t, env.DB.Model(&models.Favorite{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateFavoriteAcceptsDescription(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t)

	payload := inceptionPayload()
	payload["description"] = "Mind-bending heist within dreams"
	payload["unknown"] = "ignored"

	resp := env.Request(http.MethodPost, "/favorites", payload)
	testutil.RequireStatus(t, resp, http.StatusCreated)
	created := testutil.DecodeJSON[models.Favorite](t, resp)
	require.NotNil(t, created.Description)
	require.Equal(t, "Mind-bending heist within dreams", *created.Description)
	require.NotContains(t, resp.Body.String(), "unknown")
}

func TestMalformedBodies(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t)

	resp := env.RequestRaw(http.MethodPost, "/favorites", `{"title": `)
	testutil.RequireStatus(t, resp, http.StatusBadRequest)
	require.Equal(t, "Invalid JSON payload", testutil.DecodeJSON[errorBody](t, resp).Message)

	resp = env.RequestRaw(http.MethodPost, "/favorites", `["Inception"]`)
	testutil.RequireStatus(t, resp, http.StatusBadRequest)
	body := testutil.DecodeJSON[errorBody](t, resp)
	require.Equal(t, "Validation error", body.Message)
	require.Len(t, body.Issues, 1)
	require.Empty(t, body.Issues[0].Path)
	require.Equal(t, "Expected object, received array", body.Issues[0].Message)

	resp = env.RequestRaw(http.MethodPost, "/favorites", "")
	testutil.RequireStatus(t, resp, http.StatusBadRequest)
	require.Len(t, testutil.DecodeJSON[errorBody](t, resp).Issues, 7)

	large := fmt.Sprintf(`{"title":%q}`, strings.Repeat("a", 200<<10))
	resp = env.RequestRaw(http.MethodPost, "/favorites", large)
	testutil.RequireStatus(t, resp, http.StatusRequestEntityTooLarge)
}

func TestUpdateFavorite(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t, testutil.WithSeed())

	resp := env.Request(http.MethodPut, "/favorites/2", map[string]any{"type": "MOVIE", "title": "Better Call Saul"})
	testutil.RequireStatus(t, resp, http.StatusOK)
	updated := testutil.DecodeJSON[models.Favorite](t, resp)
	require.Equal(t, "Better Call Saul", updated.Title)
	require.Equal(t, models.FavoriteTypeMovie, updated.Type)
	require.Equal(t, "Vince Gilligan", updated.Director)

	resp = env.Request(http.MethodPut, "/favorites/2", map[string]any{})
	testutil.RequireStatus(t, resp, http.StatusOK)
	require.Equal(t, "Better Call Saul", testutil.DecodeJSON[models.Favorite](t, resp).Title)

	resp = env.Request(http.MethodPut, "/favorites/2", map[string]any{"title": ""})
	testutil.RequireStatus(t, resp, http.StatusBadRequest)
	body := testutil.DecodeJSON[errorBody](t, resp)
	require.Len(t, body.Issues, 1)
	require.Equal(t, []string{"title"}, body.Issues[0].Path)

	resp = env.Request(http.MethodPut, "/favorites/999", map[string]any{"budget": "$1"})
	testutil.RequireStatus(t, resp, http.StatusNotFound)
	require.Equal(t, "Favorite not found", testutil.DecodeJSON[errorBody](t, resp).Message)
}

func TestInvalidIdentifiers(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t, testutil.WithSeed())

	for _, path := range []string{"/favorites/abc", "/favorites/0", "/favorites/-1", "/favorites/1.5", "/favorites/99999999999999999999"} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			resp := env.Request(method, path, map[string]any{"budget": "$1"})
			testutil.RequireStatus(t, resp, http.StatusBadRequest)
			require.Equal(t, "Invalid id", testutil.DecodeJSON[errorBody](t, resp).Message, method+" "+path)
		}
	}

	var count int64
	require.NoError(t, env.DB.Model(&models.Favorite{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestDeleteFavorite(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t, testutil.WithSeed())

	resp := env.Request(http.MethodDelete, "/favorites/1", nil)
	testutil.RequireStatus(t, resp, http.StatusNoContent)

	resp = env.Request(http.MethodDelete, "/favorites/1", nil)
	testutil.RequireStatus(t, resp, http.StatusNotFound)

	resp = env.Request(http.MethodGet, "/favorites/1", nil)
	testutil.RequireStatus(t, resp, http.StatusNotFound)

	page := testutil.DecodeJSON[favoritePage](t, env.Request(http.MethodGet, "/favorites", nil))
	require.Len(t, page.Data, 1)
	require.Equal(t, "Breaking Bad", page.Data[0].Title)
}

func TestListFavoritesPagination(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t)

	for i := 1; i <= 5; i++ {
		payload := inceptionPayload()
		payload["title"] = fmt.Sprintf("Favorite %d", i)
		testutil.RequireStatus(t, env.Request(http.MethodPost, "/favorites", payload), http.StatusCreated)
	}

	page := testutil.DecodeJSON[favoritePage](t, env.Request(http.MethodGet, "/favorites?take=2", nil))
	require.Len(t, page.Data, 2)
	require.NotNil(t, page.NextCursor)
	require.Equal(t, uint(2), *page.NextCursor)

	var titles []string
	cursor := ""
	for {
		resp := env.Request(http.MethodGet, "/favorites?take=2"+cursor, nil)
		testutil.RequireStatus(t, resp, http.StatusOK)
		page := testutil.DecodeJSON[favoritePage](t, resp)
		for _, fav := range page.Data {
			titles = append(titles, fav.Title)
		}
		if page.NextCursor == nil {
			break
		}
		cursor = fmt.Sprintf("&cursor=%d", *page.NextCursor)
	}
	require.Equal(t, []string{"Favorite 1", "Favorite 2", "Favorite 3", "Favorite 4", "Favorite 5"}, titles)

	// take is clamped to [1, 100]; junk falls back to the default.
	for query, expected := range map[string]int{
		"?take=0":     1,
		"?take=-4":    1,
		"?take=1000":  5,
		"?take=abc":   5,
		"?take=2.9":   2,
		"?cursor=abc": 5,
		"?cursor=-3":  5,
		"?cursor=4":   1,
	} {
		resp := env.Request(http.MethodGet, "/favorites"+query, nil)
		testutil.RequireStatus(t, resp, http.StatusOK)
		require.Len(t, testutil.DecodeJSON[favoritePage](t, resp).Data, expected, query)
	}
}

func TestListExactMultipleYieldsTrailingEmptyPage(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t, testutil.WithSeed())

	page := testutil.DecodeJSON[favoritePage](t, env.Request(http.MethodGet, "/favorites?take=2", nil))
	require.Len(t, page.Data, 2)
	require.NotNil(t, page.NextCursor)

	resp := env.Request(http.MethodGet, fmt.Sprintf("/favorites?take=2&cursor=%d", *page.NextCursor), nil)
	require.JSONEq(t, `{"data":[],"nextCursor":null}`, resp.Body.String())
}

func TestUnknownRouteAndHeaders(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/nope", nil)
	testutil.RequireStatus(t, resp, http.StatusNotFound)
	require.Equal(t, "Route /nope not found", testutil.DecodeJSON[errorBody](t, resp).Message)

	resp = env.Request(http.MethodGet, "/favorites", nil)
	require.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"))
	require.NotEmpty(t, resp.Header().Get("X-Request-ID"))

	resp = env.Request(http.MethodOptions, "/favorites/1", nil)
	testutil.RequireStatus(t, resp, http.StatusNoContent)
}
