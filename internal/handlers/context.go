package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/calebmoss/gamedex/internal/middleware"
	"github.com/calebmoss/gamedex/internal/models"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUser returns the authenticated user placed in the context by the
// auth middleware, or nil when the route is unprotected.
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get(middleware.CtxUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
