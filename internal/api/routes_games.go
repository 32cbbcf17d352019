package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebmoss/gamedex/internal/handlers"
)

func registerGameRoutes(api *gin.RouterGroup, deps Dependencies) {
	handler := handlers.NewGamesHandler(deps.Catalog)

	games := api.Group("/games")
	{
		games.GET("", handler.List)
		games.GET("/search", handler.Search)
		games.GET("/:id", handler.Detail)
	}
}
