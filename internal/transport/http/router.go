package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/procat-browser/internal/pkg/logging"
	"github.com/light-bringer/procat-browser/internal/pkg/requestid"
)

const requestIDKey = "request_id"

// NewRouter builds the gin engine serving the catalog under basePath (e.g. "/cms").
func NewRouter(handler *CatalogHandler, basePath string, logger *zap.Logger) *gin.Engine {
	logger = logging.OrNop(logger)

	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware(), accessLog(logger))
	handler.Register(r.Group(basePath))
	return r
}

// requestIDMiddleware propagates X-Request-ID, generating one when absent.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if incoming := c.GetHeader(requestid.Header); incoming != "" {
			ctx = requestid.WithID(ctx, incoming)
		}
		ctx, id := requestid.Ensure(ctx)

		c.Set(requestIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestid.Header, id)
		c.Next()
	}
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestIDFrom(c)))
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
