package service

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contacts-api/internal/errs"
)

// RequestLogger logs one line per HTTP request once the request has been handled.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", strings.ToUpper(c.Request.Method)),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// ErrorHandler renders the last error that a handler attached to the context. Only messages of
// errors marked as exposed reach the client; everything else becomes a generic 500. Outside
// production the trace is added to the response.
func ErrorHandler(log *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		writeError(c, log, c.Errors.Last().Err, production)
	}
}

// Recovery turns a panic in a handler into the same response as any other unexpected error.
func Recovery(log *zap.Logger, production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		writeError(c, log, errors.Errorf("panic: %v", recovered), production)
	})
}

func writeError(c *gin.Context, log *zap.Logger, err error, production bool) {
	status, body := errs.Render(err, !production)
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	}
	if status >= 500 {
		log.Error("request failed", fields...)
	} else {
		log.Warn("request rejected", fields...)
	}
	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(status, body)
}
