package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hotelindigo/internal/apiclient"
)

func TestErrorLogger_RecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), ErrorLogger())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_KeepsCallerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
}

func TestClassify(t *testing.T) {
	kind, extra := classify(&apiclient.APIError{StatusCode: 409, Message: "taken"})
	assert.Equal(t, "upstream_rejected", kind)
	assert.Equal(t, []string{"upstream_status", "409"}, extra)

	kind, _ = classify(fmt.Errorf("list rooms: %w", apiclient.ErrNetwork))
	assert.Equal(t, "upstream_unreachable", kind)

	kind, _ = classify(apiclient.ErrSessionExpired)
	assert.Equal(t, "session_expired", kind)

	kind, _ = classify(errors.New("boom"))
	assert.Equal(t, "internal", kind)
}

func TestRequestID_ReplacesOversizedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 200))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Len(t, w.Body.String(), 36)
}
