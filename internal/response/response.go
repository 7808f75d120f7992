package response

import (
	"github.com/gin-gonic/gin"
)

// The API uses flat response bodies. Successes carry "success": true plus the
// payload fields; failures carry "success": false, the human-readable "error"
// message, and a machine-readable "code". The request ID travels in the
// X-Request-ID header rather than the body.

// Success sends a successful JSON response, merging data into the envelope.
func Success(c *gin.Context, statusCode int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Fail sends an error response with a typed code and its message.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   GetMessage(code),
		"code":    code,
	})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   GetMessage(code),
		"code":    code,
		"fields":  fields,
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success": false,
		"error":   GetMessage(code),
		"code":    code,
	})
}
