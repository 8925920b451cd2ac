package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelindigo/internal/pkg/response"
	"hotelindigo/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the cart under /cart. Checkout needs a session and is
// registered on the protected group.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	c := public.Group("/cart")
	{
		c.GET("", h.Get)
		c.POST("/items", h.AddItem)
		c.PATCH("/items/:dishId", h.UpdateQuantity)
		c.DELETE("/items/:dishId", h.RemoveItem)
		c.DELETE("", h.Clear)
	}
	protected.POST("/cart/checkout", h.Checkout)
}

func (h *Handler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Cart())
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := validator.Check(req); err != nil {
		response.Failure(c, err, "")
		return
	}

	state, err := h.service.AddDish(c.Request.Context(), req.DishID, req.Quantity)
	if err != nil {
		h.fail(c, err, "Could not add the dish to the cart")
		return
	}
	response.Success(c, http.StatusOK, state)
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	id, ok := dishID(c)
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		response.ValidationError(c, "quantity is required")
		return
	}

	state, err := h.service.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		h.fail(c, err, "Could not update the cart")
		return
	}
	response.Success(c, http.StatusOK, state)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	id, ok := dishID(c)
	if !ok {
		return
	}
	state, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Could not update the cart")
		return
	}
	response.Success(c, http.StatusOK, state)
}

func (h *Handler) Clear(c *gin.Context) {
	state, err := h.service.Clear(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Could not clear the cart")
		return
	}
	response.Success(c, http.StatusOK, state)
}

func (h *Handler) Checkout(c *gin.Context) {
	var form OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	order, err := h.service.Checkout(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err, "Could not place the order, try again")
		return
	}
	response.Success(c, http.StatusCreated, CheckoutResponse{OrderID: order.ID, Total: order.Total})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrEmptyCart):
		response.Error(c, http.StatusBadRequest, "EMPTY_CART", "Your cart is empty")
	case errors.Is(err, ErrDishUnavailable):
		response.Error(c, http.StatusConflict, "DISH_UNAVAILABLE", "This dish is not available right now")
	case errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Failure(c, err, fallback)
	}
}

func dishID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("dishId"), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, "invalid dish id")
		return 0, false
	}
	return id, true
}
