package gin

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/offerscan"
	"github.com/gin-gonic/gin"
)

// requestLogger logs each request with method, path, status and duration.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
		)
	}
}

// corsMiddleware allows cross-origin access to the read-only-ish API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// bindPagination reads limit and offset query parameters into the filter.
func bindPagination(c *gin.Context, filter *offerscan.ScanFilter) error {
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return offerscan.Errorf(offerscan.EINVALID, "invalid limit %q", limit)
		}
		filter.Limit = n
	}
	if offset := c.Query("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return offerscan.Errorf(offerscan.EINVALID, "invalid offset %q", offset)
		}
		filter.Offset = n
	}
	return nil
}
