package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelindigo/internal/domain"
	"hotelindigo/internal/modules/auth"
	"hotelindigo/internal/pkg/response"
)

type SessionReader interface {
	Current(ctx context.Context) (*domain.SessionUser, error)
}

// RequireSession lets a request through only while a user is logged in. It
// sets user_id and role for the handlers and the error logger.
func RequireSession(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := sessions.Current(c.Request.Context())
		if err != nil {
			if !errors.Is(err, auth.ErrNotAuthenticated) {
				log.Printf("session_read_failed path=%s error=%q", c.Request.URL.Path, err.Error())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Log in to continue",
					"details": gin.H{"redirect": response.LoginPath},
				},
			})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}
