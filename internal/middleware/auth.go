package middleware

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/calebmoss/gamedex/internal/auth"
	"github.com/calebmoss/gamedex/pkg/errors"
	"github.com/calebmoss/gamedex/pkg/response"
)

const (
	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName = "gamedex_session"

	CtxUserKey   = "authUser"
	CtxUserIDKey = "userID"
)

// Auth enforces cookie-session authentication using the supplied session service.
func Auth(sessions *iauth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			// Missing, unknown, and expired sessions all normalise to 401
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxUserKey, user)
		c.Set(CtxUserIDKey, user.ID)

		c.Next()
	}
}
