package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/calebmoss/gamedex/internal/catalog"
	"github.com/calebmoss/gamedex/pkg/errors"
	"github.com/calebmoss/gamedex/pkg/response"
)

// GamesHandler proxies the upstream catalog through the cache layer. The
// upstream payload is returned verbatim; this handler never reshapes it.
type GamesHandler struct {
	catalog *catalog.Service
}

func NewGamesHandler(svc *catalog.Service) *GamesHandler {
	return &GamesHandler{catalog: svc}
}

// GET /api/games
func (h *GamesHandler) List(c *gin.Context) {
	params := catalog.ListingParams{
		Search:     c.Query("search"),
		Page:       c.Query("page"),
		PageSize:   c.Query("page_size"),
		Platforms:  c.Query("platforms"),
		Genres:     c.Query("genres"),
		Ordering:   c.Query("ordering"),
		ESRBRating: c.Query("esrb_rating"),
	}

	payload, err := h.catalog.Games(requestContext(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, json.RawMessage(payload))
}

// GET /api/games/:id
func (h *GamesHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errors.NewBadRequest("game id must be numeric"))
		return
	}

	payload, err := h.catalog.GameByID(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, json.RawMessage(payload))
}

// GET /api/games/search
func (h *GamesHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		response.Error(c, errors.NewBadRequest("query parameter is required"))
		return
	}

	payload, err := h.catalog.Search(requestContext(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, json.RawMessage(payload))
}
