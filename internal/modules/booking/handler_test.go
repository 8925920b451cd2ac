package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelindigo/internal/modules/availability"
)

func bookingRouter(w *Workflow) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(w, nil).RegisterRoutes(api, api)
	return r
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_StartOccupiedReturnsFreeAt(t *testing.T) {
	w, gw, av := newWorkflow()
	av.On("Check", mock.Anything, mock.Anything).
		Return(availability.Status{Occupied: true, FreeAt: "21:00"}, nil)
	r := bookingRouter(w)

	rec := send(r, http.MethodPost, "/api/v1/booking/start",
		`{"type":"table","table":{"mesa_id":7,"fecha":"2026-05-02","hora":"20:30","cantidad_personas":4}}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RESOURCE_OCCUPIED", body.Error.Code)
	assert.Equal(t, "21:00", body.Error.Details["free_at"])
	gw.AssertNotCalled(t, "RequestCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_ConfirmShortCode(t *testing.T) {
	w, gw, _ := newWorkflow()
	rec := send(bookingRouter(w), http.MethodPost, "/api/v1/booking/confirm", `{"codigo":"12"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	gw.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_NoConfirmationYet(t *testing.T) {
	w, _, _ := newWorkflow()
	r := bookingRouter(w)

	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/api/v1/booking/confirmation", "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/api/v1/booking/confirmation/qr", "").Code)
}

func TestHandler_DismissReturnsIdle(t *testing.T) {
	w, _, _ := newWorkflow()
	rec := send(bookingRouter(w), http.MethodPost, "/api/v1/booking/dismiss", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phase":"idle"`)
}
