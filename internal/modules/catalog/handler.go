package catalog

import (
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
	rg.GET("/rooms", h.Rooms)
	rg.GET("/rooms/:id", h.Room)
	rg.GET("/tables", h.Tables)
	rg.GET("/salons", h.Salons)
	rg.GET("/dishes", h.Dishes)
}

func (h *Handler) Rooms(c *gin.Context) {
	var f RoomFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.ValidationError(c, "Invalid query parameters")
		return
	}
	rooms, err := h.service.Rooms(c.Request.Context(), f)
	if err != nil {
		response.Failure(c, err, "Could not load rooms")
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

func (h *Handler) Room(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, "invalid room id")
		return
	}
	room, err := h.service.Room(c.Request.Context(), id)
	if err != nil {
		response.Failure(c, err, "Room not found")
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) Tables(c *gin.Context) {
	guests, _ := strconv.Atoi(c.DefaultQuery("guests", "1"))
	tables, err := h.service.Tables(c.Request.Context(), guests)
	if err != nil {
		response.Failure(c, err, "Could not load tables")
		return
	}
	response.Success(c, http.StatusOK, tables)
}

func (h *Handler) Salons(c *gin.Context) {
	salons, err := h.service.Salons(c.Request.Context())
	if err != nil {
		response.Failure(c, err, "Could not load salons")
		return
	}
	response.Success(c, http.StatusOK, salons)
}

func (h *Handler) Dishes(c *gin.Context) {
	var f DishFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.ValidationError(c, "Invalid query parameters")
		return
	}
	dishes, err := h.service.Dishes(c.Request.Context(), f)
	if err != nil {
		response.Failure(c, err, "Could not load the menu")
		return
	}
	response.Success(c, http.StatusOK, dishes)
}
