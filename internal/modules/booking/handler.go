package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelindigo/internal/pkg/response"
	"hotelindigo/internal/pkg/validator"
)

type Handler struct {
	workflow *Workflow
	quoter   *Quoter
}

func NewHandler(workflow *Workflow, quoter *Quoter) *Handler {
	return &Handler{workflow: workflow, quoter: quoter}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/booking/quote", h.Quote)

	b := protected.Group("/booking")
	{
		b.GET("", h.Get)
		b.POST("/start", h.Start)
		b.POST("/confirm", h.Confirm)
		b.POST("/dismiss", h.Dismiss)
		b.GET("/confirmation", h.LastConfirmation)
		b.GET("/confirmation/qr", h.ConfirmationQR)
	}
}

func (h *Handler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, h.workflow.Snapshot())
}

func (h *Handler) Start(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	snap, err := h.workflow.Start(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Not available")
		return
	}
	response.Success(c, http.StatusOK, snap)
}

func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	conf, err := h.workflow.Confirm(c.Request.Context(), req.Code)
	if err != nil {
		h.fail(c, err, "Error processing the reservation")
		return
	}
	response.Success(c, http.StatusCreated, conf)
}

func (h *Handler) Dismiss(c *gin.Context) {
	response.Success(c, http.StatusOK, h.workflow.Dismiss())
}

func (h *Handler) LastConfirmation(c *gin.Context) {
	conf, err := h.workflow.LastConfirmation()
	if err != nil {
		h.fail(c, err, "")
		return
	}
	response.Success(c, http.StatusOK, conf)
}

func (h *Handler) ConfirmationQR(c *gin.Context) {
	conf, err := h.workflow.LastConfirmation()
	if err != nil {
		h.fail(c, err, "")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultQRSize)))
	if size < 64 || size > 1024 {
		size = DefaultQRSize
	}
	png, err := conf.QRCode(size)
	if err != nil {
		response.Failure(c, err, "Could not render the QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) Quote(c *gin.Context) {
	var q QuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, "Invalid query parameters")
		return
	}
	if err := validator.Check(q); err != nil {
		response.Failure(c, err, "")
		return
	}
	quote, err := h.quoter.Quote(c.Request.Context(), q.RoomID, q.CheckIn, q.CheckOut)
	if err != nil {
		h.fail(c, err, "Could not price the stay")
		return
	}
	response.Success(c, http.StatusOK, quote)
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	var occupied *OccupiedError
	switch {
	case errors.As(err, &occupied):
		response.ErrorWithDetails(c, http.StatusConflict, "RESOURCE_OCCUPIED", occupied.Error(),
			gin.H{"free_at": occupied.FreeAt})
	case errors.Is(err, ErrLoginRequired):
		response.ErrorWithDetails(c, http.StatusUnauthorized, "LOGIN_REQUIRED", err.Error(),
			gin.H{"redirect": response.LoginPath})
	case errors.Is(err, ErrCodeTooShort), errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidDates):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrNoSession):
		response.Error(c, http.StatusConflict, "NO_VERIFICATION_SESSION", err.Error())
	case errors.Is(err, ErrSuperseded):
		response.Error(c, http.StatusConflict, "WORKFLOW_DISMISSED", err.Error())
	case errors.Is(err, ErrNoConfirmation):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Failure(c, err, fallback)
	}
}
