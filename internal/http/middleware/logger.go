package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"automart/internal/utils"
)

// RequestLogger records every request with latency and status code.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		rid := GetRequestID(c)
		msg := fmt.Sprintf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), latency)
		utils.LogEvent(rid, "http", "request", msg)
	}
}
