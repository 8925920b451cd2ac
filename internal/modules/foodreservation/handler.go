package foodreservation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelindigo/internal/domain"
	"hotelindigo/internal/pkg/response"
	"hotelindigo/internal/pkg/validator"
)

type Handler struct {
	reservations *Reservations
	dishes       DishRepository
}

func NewHandler(reservations *Reservations, dishes DishRepository) *Handler {
	return &Handler{reservations: reservations, dishes: dishes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	fr := rg.Group("/food-reservations")
	{
		fr.GET("", h.List)
		fr.POST("", h.Add)
		fr.DELETE("", h.Clear)
		fr.PATCH("/:id", h.Update)
		fr.DELETE("/:id", h.Remove)
		fr.POST("/:id/confirm", h.Confirm)
		fr.POST("/:id/cancel", h.Cancel)
	}
}

// List returns the staged reservations, optionally filtered by ?estado=.
func (h *Handler) List(c *gin.Context) {
	state := h.reservations.Snapshot()
	items := state.Reservations
	if estado := c.Query("estado"); estado != "" {
		status := domain.ReservationStatus(estado)
		if !status.Valid() {
			response.ValidationError(c, ErrInvalidStatus.Error())
			return
		}
		items = state.ByStatus(status)
	}
	if items == nil {
		items = []Reservation{}
	}
	response.Success(c, http.StatusOK, ListResponse{
		Reservations: items,
		Pending:      len(state.Pending()),
		Confirmed:    len(state.Confirmed()),
	})
}

func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := validator.Check(req); err != nil {
		response.Failure(c, err, "")
		return
	}

	dish, err := h.dishes.GetDish(c.Request.Context(), req.DishID)
	if err != nil {
		fail(c, err)
		return
	}
	if !dish.Available {
		fail(c, ErrDishUnavailable)
		return
	}

	res, err := h.reservations.Add(c.Request.Context(), *dish, req.Extra)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Update(c *gin.Context) {
	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	res, err := h.reservations.Update(c.Request.Context(), ID(c.Param("id")), patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Confirm(c *gin.Context) {
	res, err := h.reservations.Confirm(c.Request.Context(), ID(c.Param("id")))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Cancel(c *gin.Context) {
	res, err := h.reservations.Cancel(c.Request.Context(), ID(c.Param("id")))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Remove(c *gin.Context) {
	state, err := h.reservations.Remove(c.Request.Context(), ID(c.Param("id")))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

func (h *Handler) Clear(c *gin.Context) {
	state, err := h.reservations.Clear(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrTerminalStatus):
		response.Error(c, http.StatusConflict, "TERMINAL_STATUS", err.Error())
	case errors.Is(err, ErrDishUnavailable):
		response.Error(c, http.StatusConflict, "DISH_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidSchedule):
		response.ValidationError(c, err.Error())
	default:
		response.Failure(c, err, "Could not update the food reservations")
	}
}
