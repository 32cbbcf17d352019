package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/calebmoss/gamedex/internal/auth"
	"github.com/calebmoss/gamedex/internal/cache"
	"github.com/calebmoss/gamedex/internal/catalog"
	"github.com/calebmoss/gamedex/internal/database/testutil"
	"github.com/calebmoss/gamedex/internal/middleware"
	"github.com/calebmoss/gamedex/internal/services"
	appErrors "github.com/calebmoss/gamedex/pkg/errors"
)

type countingFetcher struct {
	calls   int
	payload []byte
	err     error
}

func (f *countingFetcher) Fetch(_ context.Context, path string, params url.Values) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.payload != nil {
		return f.payload, nil
	}
	return json.RawMessage(fmt.Sprintf(`{"path":%q,"search":%q}`, path, params.Get("search"))), nil
}

type testEnv struct {
	router  *gin.Engine
	fetcher *countingFetcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t)

	users, err := services.NewUserService(db)
	require.NoError(t, err)
	favorites, err := services.NewFavoriteService(db)
	require.NoError(t, err)
	sessions, err := iauth.NewSessionService(db, iauth.SessionConfig{})
	require.NoError(t, err)

	fetcher := &countingFetcher{}
	catalogSvc, err := catalog.NewService(cache.NewMemoryStore(), fetcher)
	require.NoError(t, err)

	authHandler := NewAuthHandler(users, sessions)
	favHandler := NewFavoritesHandler(favorites)
	gamesHandler := NewGamesHandler(catalogSvc)

	router := gin.New()
	api := router.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/logout", authHandler.Logout)
	api.GET("/auth/user", middleware.Auth(sessions), authHandler.Me)

	fav := api.Group("/favorites", middleware.Auth(sessions))
	fav.GET("", favHandler.List)
	fav.POST("", favHandler.Create)
	fav.DELETE("/:gameId", favHandler.Delete)

	api.GET("/games", gamesHandler.List)
	api.GET("/games/search", gamesHandler.Search)
	api.GET("/games/:id", gamesHandler.Detail)

	return &testEnv{router: router, fetcher: fetcher}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, email, username string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    email,
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (e *testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "player@example.com", "player")

	// Same email again is rejected.
	rec := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "player@example.com",
		"username": "other",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "DUPLICATE_EMAIL", body["error"].(map[string]any)["code"])

	// Wrong password looks identical to an unknown account.
	rec = env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "player@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := env.login(t, "player@example.com")

	rec = env.do(t, http.MethodGet, "/api/auth/user", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	data := body["data"].(map[string]any)
	require.Equal(t, "player@example.com", data["email"])
	require.NotContains(t, data, "password")

	rec = env.do(t, http.MethodGet, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// The destroyed session no longer authenticates.
	rec = env.do(t, http.MethodGet, "/api/auth/user", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "not-an-email",
		"username": "player",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "player@example.com",
		"username": "player",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavoritesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/favorites", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/favorites", gin.H{"game_id": 42, "game_name": "Hades"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFavoritesFlow(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "player@example.com", "player")
	cookie := env.login(t, "player@example.com")

	rec := env.do(t, http.MethodPost, "/api/favorites", gin.H{
		"game_id":   42,
		"game_name": "Hades",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Re-adding the same game is rejected.
	rec = env.do(t, http.MethodPost, "/api/favorites", gin.H{
		"game_id":   42,
		"game_name": "Hades",
	}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "DUPLICATE_FAVORITE", body["error"].(map[string]any)["code"])

	rec = env.do(t, http.MethodGet, "/api/favorites", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	require.Len(t, body["data"], 1)

	rec = env.do(t, http.MethodDelete, "/api/favorites/not-a-number", nil, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/favorites/42", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// Removing an absent favorite is a 404.
	rec = env.do(t, http.MethodDelete, "/api/favorites/42", nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/favorites", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	require.Len(t, body["data"], 0)
}

func TestGamesListCaches(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/games?search=zelda&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, env.fetcher.calls)

	// Identical parameters are served from cache.
	rec = env.do(t, http.MethodGet, "/api/games?search=zelda&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, env.fetcher.calls)

	// Any differing parameter is a different entry.
	rec = env.do(t, http.MethodGet, "/api/games?search=zelda&page=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, env.fetcher.calls)
}

func TestGameDetail(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.payload = []byte(`{"id":1030,"name":"Limbo"}`)

	rec := env.do(t, http.MethodGet, "/api/games/1030", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "Limbo", body["data"].(map[string]any)["name"])

	rec = env.do(t, http.MethodGet, "/api/games/not-a-number", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGameSearch(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/games/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/games/search?query=portal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, env.fetcher.calls)

	rec = env.do(t, http.MethodGet, "/api/games/search?query=portal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, env.fetcher.calls)
}

func TestUpstreamFailureSurfacesAsBadGateway(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.err = appErrors.ErrUpstream.WithInternal(fmt.Errorf("connection refused"))

	rec := env.do(t, http.MethodGet, "/api/games?search=zelda", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "UPSTREAM_FETCH_FAILED", body["error"].(map[string]any)["code"])
}
