package preview

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationIDHeader carries the request id in and out.
const CorrelationIDHeader = "X-Correlation-ID"

const (
	correlationIDKey = "correlationID"
	loggerKey        = "slogLogger"
)

// CorrelationID makes sure every request carries an id, reusing the
// caller's when present.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header(CorrelationIDHeader, id)

		c.Next()
	}
}

// RequestLogger attaches a request-scoped logger and logs completion.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		requestLogger := logger.With(
			slog.String("correlation_id", c.GetString(correlationIDKey)),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
		)
		c.Set(loggerKey, requestLogger)

		start := time.Now()
		c.Next()

		requestLogger.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

func loggerFrom(c *gin.Context) (logger *slog.Logger) {
	if value, ok := c.Get(loggerKey); ok {
		if l, ok := value.(*slog.Logger); ok {
			logger = l
			return logger
		}
	}
	logger = slog.Default()
	return logger
}
