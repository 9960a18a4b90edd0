package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORS allows the counting-terminal frontend to call the API from its
// own origin. allowedOrigin comes from config: "*" in development, the
// store dashboard's origin in production. No Authorization header is
// allowed because the API carries no auth of its own.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
