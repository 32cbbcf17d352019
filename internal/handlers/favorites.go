package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calebmoss/gamedex/internal/services"
	"github.com/calebmoss/gamedex/pkg/errors"
	"github.com/calebmoss/gamedex/pkg/response"
)

// FavoritesHandler exposes the authenticated user's favorite games.
type FavoritesHandler struct {
	favorites *services.FavoriteService
}

func NewFavoritesHandler(favorites *services.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

type addFavoriteRequest struct {
	GameID    int64   `json:"game_id" validate:"required"`
	GameName  string  `json:"game_name" validate:"required"`
	GameImage *string `json:"game_image" validate:"omitempty,url"`
}

// POST /api/favorites
func (h *FavoritesHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req addFavoriteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	favorite, err := h.favorites.Add(requestContext(c), services.AddFavoriteInput{
		UserID:    user.ID,
		GameID:    req.GameID,
		GameName:  req.GameName,
		GameImage: req.GameImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, favorite)
}

// DELETE /api/favorites/:gameId
func (h *FavoritesHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	gameID, err := strconv.ParseInt(c.Param("gameId"), 10, 64)
	if err != nil {
		response.Error(c, errors.NewBadRequest("game id must be numeric"))
		return
	}

	if err := h.favorites.Remove(requestContext(c), user.ID, gameID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// GET /api/favorites
func (h *FavoritesHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	favorites, err := h.favorites.List(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, favorites)
}
