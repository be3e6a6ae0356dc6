package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/favorites/internal/services"
	appErrors "github.com/charlesng35/favorites/pkg/errors"
)

// maxBodyBytes mirrors the 100kb default of common JSON body parsers.
const maxBodyBytes = 100 << 10

var (
	errInvalidJSON = appErrors.NewBadRequest("Invalid JSON payload")
	errTooLarge    = appErrors.New("PAYLOAD_TOO_LARGE", "Payload too large", http.StatusRequestEntityTooLarge)
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// decodeJSONBody reads the request body into a generic JSON value. An empty
// body decodes to an empty object so validation can report missing fields.
func decodeJSONBody(c *gin.Context) (any, error) {
	if c.Request == nil || c.Request.Body == nil {
		return map[string]any{}, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errTooLarge.WithInternal(err)
		}
		return nil, errInvalidJSON.WithInternal(err)
	}

	if strings.TrimSpace(string(body)) == "" {
		return map[string]any{}, nil
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errInvalidJSON.WithInternal(err)
	}
	return raw, nil
}

// favoriteID parses the :id path parameter.
func favoriteID(c *gin.Context) (uint, error) {
	id, err := services.ParseFavoriteID(c.Param("id"))
	if err != nil {
		return 0, appErrors.ErrInvalidID.WithInternal(err)
	}
	return id, nil
}

// translateFavoriteError maps service errors onto client facing AppErrors.
func translateFavoriteError(err error) error {
	var validationErr *services.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &validationErr):
		return appErrors.ErrValidation.WithIssues(validationErr.Issues).WithInternal(err)
	case errors.Is(err, services.ErrInvalidID):
		return appErrors.ErrInvalidID.WithInternal(err)
	case errors.Is(err, services.ErrFavoriteNotFound):
		return appErrors.NewNotFound("Favorite not found").WithInternal(err)
	default:
		return appErrors.ErrInternalServer.WithInternal(err)
	}
}
