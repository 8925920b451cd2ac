package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelindigo/internal/apiclient"
	"hotelindigo/internal/pkg/validator"
)

const LoginPath = "/login"

// Failure writes the envelope for errors every handler can meet: local
// validation, an expired session, a network failure and backend rejections.
// fallback is shown when the backend sent no message of its own.
func Failure(c *gin.Context, err error, fallback string) {
	var fields validator.FieldErrors
	var apiErr *apiclient.APIError

	switch {
	case errors.As(err, &fields):
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", map[string]string(fields))

	case errors.Is(err, apiclient.ErrSessionExpired):
		ErrorWithDetails(c, http.StatusUnauthorized, "SESSION_EXPIRED", "Session expired, please log in again",
			gin.H{"redirect": LoginPath})

	case errors.Is(err, apiclient.ErrNetwork):
		_ = c.Error(err)
		Error(c, http.StatusBadGateway, "NETWORK_ERROR", "The hotel service is unreachable, try again")

	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		status := apiErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		Error(c, status, "UPSTREAM_REJECTED", msg)

	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
}
