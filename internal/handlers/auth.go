package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	iauth "github.com/calebmoss/gamedex/internal/auth"
	"github.com/calebmoss/gamedex/internal/middleware"
	"github.com/calebmoss/gamedex/internal/services"
	"github.com/calebmoss/gamedex/pkg/errors"
	"github.com/calebmoss/gamedex/pkg/metrics"
	"github.com/calebmoss/gamedex/pkg/response"
)

// AuthHandler manages account registration and login/logout flows.
type AuthHandler struct {
	users    *services.UserService
	sessions *iauth.SessionService
}

func NewAuthHandler(users *services.UserService, sessions *iauth.SessionService) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type registerRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Username       string  `json:"username" validate:"required,min=3,max=32"`
	Password       string  `json:"password" validate:"required,min=8"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.Register(requestContext(c), services.RegisterInput{
		Email:          req.Email,
		Username:       req.Username,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.Authenticate(requestContext(c), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		// Normalise auth errors to 401
		response.Error(c, errors.ErrInvalidCredentials)
		return
	}

	session, err := h.sessions.Create(requestContext(c), user.ID)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, errors.ErrInternalServer)
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, session.Token, int(h.sessions.TTL().Seconds()), "/", "", false, true)

	response.Success(c, http.StatusOK, user)
}

// GET /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && token != "" {
		if err := h.sessions.Destroy(requestContext(c), token); err != nil {
			response.Error(c, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/auth/user
func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	response.Success(c, http.StatusOK, user)
}
