package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/favorites/internal/services"
	"github.com/charlesng35/favorites/pkg/response"
)

// FavoriteHandler serves the /favorites resource.
type FavoriteHandler struct {
	svc *services.FavoriteService
}

// NewFavoriteHandler constructs a favorite handler backed by the supplied service.
func NewFavoriteHandler(svc *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

// GET /favorites?take=&cursor=
func (h *FavoriteHandler) List(c *gin.Context) {
	req := services.ParsePageRequest(c.Query("take"), c.Query("cursor"))

	page, err := h.svc.List(requestContext(c), req)
	if err != nil {
		response.Error(c, translateFavoriteError(err))
		return
	}

	response.Paginated(c, page.Data, page.NextCursor)
}

// GET /favorites/:id
func (h *FavoriteHandler) Get(c *gin.Context) {
	id, err := favoriteID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	favorite, err := h.svc.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, translateFavoriteError(err))
		return
	}

	response.Success(c, http.StatusOK, favorite)
}

// POST /favorites
func (h *FavoriteHandler) Create(c *gin.Context) {
	raw, err := decodeJSONBody(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	input, err := services.ValidateCreateFavorite(raw)
	if err != nil {
		response.Error(c, translateFavoriteError(err))
		return
	}

	favorite, err := h.svc.Create(requestContext(c), input)
	if err != nil {
		response.Error(c, translateFavoriteError(err))
		return
	}

	response.Success(c, http.StatusCreated, favorite)
}

// PUT /favorites/:id
func (h *FavoriteHandler) Update(c *gin.Context) {
	id, err := favoriteID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	raw, err := decodeJSONBody(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	input, err := services.ValidateUpdateFavorite(raw)
	if err != nil {
		response.Error(c, translateFavoriteError(err))
		return
	}

	favorite, err := h.svc.Update(requestContext(c), id, input)
	if err != nil {
		response.Error(c, translateFavoriteError(err))
		return
	}

	response.Success(c, http.StatusOK, favorite)
}

// DELETE /favorites/:id
func (h *FavoriteHandler) Delete(c *gin.Context) {
	id, err := favoriteID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.Delete(requestContext(c), id); err != nil {
		response.Error(c, translateFavoriteError(err))
		return
	}

	response.NoContent(c)
}
