package middleware

import (
	"mime"
	"net/http"

	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize limits the request body. Reads past the limit fail and the
// bind error surfaces as a validation response.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RequireJSON rejects command requests whose body is not application/json.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}
		mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
		if err != nil || mediaType != gin.MIMEJSON {
			response.Error(c, apperror.New(apperror.CodeValidation,
				"Content-Type must be application/json", http.StatusUnsupportedMediaType))
			c.Abort()
			return
		}
		c.Next()
	}
}
