package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hotelindigo/internal/domain"
	"hotelindigo/internal/modules/auth"
)

type stubSessions struct {
	user *domain.SessionUser
}

func (s stubSessions) Current(context.Context) (*domain.SessionUser, error) {
	if s.user == nil {
		return nil, auth.ErrNotAuthenticated
	}
	return s.user, nil
}

func sessionRouter(s SessionReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(nil), RequireSession(s))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id"), "role": c.GetString("role")})
	})
	return router
}

func TestRequireSession_LoggedIn(t *testing.T) {
	router := sessionRouter(stubSessions{user: &domain.SessionUser{ID: 42, Role: "cliente"}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"role":"cliente"}`, w.Body.String())
}

func TestRequireSession_Anonymous(t *testing.T) {
	router := sessionRouter(stubSessions{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
}

func TestCORS_PreflightSkipsSession(t *testing.T) {
	router := sessionRouter(stubSessions{})

	req := httptest.NewRequest(http.MethodOptions, "/protected", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
