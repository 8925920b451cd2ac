package reservation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hotelindigo/internal/domain"
)

func setupRouter(repo *MockRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Next()
	})
	NewHandler(NewService(repo, nil, time.UTC)).RegisterRoutes(api)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ListUsesSessionUser(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListRoomReservations", mock.Anything).Return([]domain.RoomReservation{}, nil)
	repo.On("ListTableReservations", mock.Anything, int64(7)).Return([]domain.TableReservation{{ID: 1}}, nil)
	repo.On("ListSalonReservations", mock.Anything, int64(7)).Return([]domain.SalonReservation{}, nil)

	w := do(setupRouter(repo), http.MethodGet, "/api/v1/reservations", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tables":[{"id":1`)
	repo.AssertExpectations(t)
}

func TestHandler_Cancel(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CancelTableReservation", mock.Anything, int64(12)).Return(nil)
	repo.On("GetRoomReservation", mock.Anything, int64(5)).
		Return(&domain.RoomReservation{ID: 5, Status: domain.ReservationCancelled}, nil)
	r := setupRouter(repo)

	w := do(r, http.MethodPost, "/api/v1/reservations/tables/12/cancel", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/api/v1/reservations/rooms/5/cancel", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATUS")

	w = do(r, http.MethodPost, "/api/v1/reservations/salons/abc/cancel", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_VerifyOTPRequiresCode(t *testing.T) {
	w := do(setupRouter(new(MockRepository)), http.MethodPost, "/api/v1/reservations/rooms/5/otp/verify", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(setupRouter(new(MockRepository)), http.MethodPost, "/api/v1/reservations/rooms/5/otp/verify", `{"codigo_otp":"12"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
