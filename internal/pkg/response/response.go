// Package response writes the JSON envelope every local endpoint answers
// with: {success, data} or {success, error{code, message, details, request_id}}.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	ErrorWithDetails(c, statusCode, code, message, nil)
}

// ErrorWithDetails is Error with a details object, for example the field
// errors of a rejected form or the redirect of an expired session.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	if id := c.GetString("request_id"); id != "" {
		body["request_id"] = id
	}
	c.JSON(statusCode, gin.H{"success": false, "error": body})
}
