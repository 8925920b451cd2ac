package availability

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/availability")
	{
		a.GET("/check", h.Check)
		a.GET("/tables", h.Tables)
		a.GET("/salons", h.Salons)
	}
}

// Check answers GET /availability/check?category=table&resource_id=3&date=2026-05-02&time=20:30
func (h *Handler) Check(c *gin.Context) {
	var cand Candidate
	if err := c.ShouldBindQuery(&cand); err != nil {
		response.ValidationError(c, "Invalid query parameters")
		return
	}
	status, err := h.service.Check(c.Request.Context(), cand)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

func (h *Handler) Tables(c *gin.Context) {
	guests, _ := strconv.Atoi(c.DefaultQuery("guests", "1"))
	board, err := h.service.TableBoard(c.Request.Context(), c.Query("date"), c.Query("time"), guests)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, board)
}

func (h *Handler) Salons(c *gin.Context) {
	board, err := h.service.SalonBoard(c.Request.Context(), c.Query("date"), c.Query("time"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, board)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidCategory) {
		response.ValidationError(c, err.Error())
		return
	}
	response.Failure(c, err, "Could not load availability")
}
