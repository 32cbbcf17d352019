package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebmoss/gamedex/internal/handlers"
)

func registerFavoriteRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, deps Dependencies) {
	handler := handlers.NewFavoritesHandler(deps.Favorites)

	favorites := api.Group("/favorites", requireAuth)
	{
		favorites.GET("", handler.List)
		favorites.POST("", handler.Create)
		favorites.DELETE("/:gameId", handler.Delete)
	}
}
