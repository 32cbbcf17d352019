package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebmoss/gamedex/internal/handlers"
)

func registerAuthRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, deps Dependencies) {
	handler := handlers.NewAuthHandler(deps.Users, deps.Sessions)

	auth := api.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.GET("/logout", handler.Logout)
		auth.GET("/user", requireAuth, handler.Me)
	}
}
