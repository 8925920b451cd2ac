package auth

import (
	"errors"
	"net/http"

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

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", h.Me)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := validator.Check(req); err != nil {
		response.Failure(c, err, "")
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		response.Failure(c, err, "Could not log in")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		response.Failure(c, err, "Could not log out")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"redirect": response.LoginPath})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			response.ErrorWithDetails(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not logged in",
				gin.H{"redirect": response.LoginPath})
			return
		}
		response.Failure(c, err, "Could not read the session")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
