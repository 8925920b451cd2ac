package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelindigo/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	r := protected.Group("/reservations")
	{
		r.GET("", h.List)
		r.GET("/rooms/:id", h.Room)
		r.PATCH("/rooms/:id", h.UpdateRoom)
		r.POST("/rooms/:id/otp/verify", h.VerifyOTP)
		r.POST("/rooms/:id/otp/resend", h.ResendOTP)
		r.POST("/rooms/:id/cancel", h.cancel(KindRoom))
		r.POST("/tables/:id/cancel", h.cancel(KindTable))
		r.POST("/salons/:id/cancel", h.cancel(KindSalon))
	}
}

func (h *Handler) List(c *gin.Context) {
	overview, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Failure(c, err, "Could not load your reservations")
		return
	}
	response.Success(c, http.StatusOK, overview)
}

func (h *Handler) Room(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.service.Room(c.Request.Context(), id)
	if err != nil {
		response.Failure(c, err, "Reservation not found")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req RoomPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	res, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Could not modify the reservation")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) cancel(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := h.service.Cancel(c.Request.Context(), kind, id); err != nil {
			h.fail(c, err, "Error cancelling the reservation")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"cancelled": true, "kind": kind, "id": id})
	}
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Enter the verification code")
		return
	}
	out, err := h.service.VerifyOTP(c.Request.Context(), id, req.Code)
	if err != nil {
		h.fail(c, err, "Invalid or expired code")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ResendOTP(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.ResendOTP(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Could not resend the code")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidType), errors.Is(err, ErrEmptyPatch), errors.Is(err, ErrCodeTooShort):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrNotModifiable), errors.Is(err, ErrNotCancellable):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", err.Error())
	default:
		response.Failure(c, err, fallback)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, "invalid reservation id")
		return 0, false
	}
	return id, true
}
