package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	iauth "github.com/calebmoss/gamedex/internal/auth"
	"github.com/calebmoss/gamedex/internal/catalog"
	"github.com/calebmoss/gamedex/internal/handlers"
	"github.com/calebmoss/gamedex/internal/middleware"
	"github.com/calebmoss/gamedex/internal/services"
)

// Dependencies carries the wired services the router mounts.
type Dependencies struct {
	DB        *gorm.DB
	Users     *services.UserService
	Favorites *services.FavoriteService
	Sessions  *iauth.SessionService
	Catalog   *catalog.Service

	// EnableMetrics exposes /metrics when set.
	EnableMetrics bool
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if deps.Users == nil {
		return nil, fmt.Errorf("user service must be provided")
	}
	if deps.Favorites == nil {
		return nil, fmt.Errorf("favorite service must be provided")
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session service must be provided")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog service must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())

	// Health endpoint (public)
	healthHandler := handlers.NewHealthHandler(deps.DB)
	r.GET("/health", healthHandler.Health)

	if deps.EnableMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")
	requireAuth := middleware.Auth(deps.Sessions)

	registerAuthRoutes(api, requireAuth, deps)
	registerGameRoutes(api, deps)
	registerFavoriteRoutes(api, requireAuth, deps)

	return r, nil
}
