package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ndesc/ndesc-api/utils"
)

// RequestLogger logs each request with method, path, status and latency
// through the structured logger.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		if utils.Logger == nil {
			return
		}
		utils.Logger.Info("request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", ctx.ClientIP()),
		)
	}
}

// Recovery turns a handler panic into the uniform 500 body and reports it to
// the operator. The client only ever sees the tracking tag.
func Recovery() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				utils.Report("PANIC", fmt.Errorf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, r))
				utils.ServerError(ctx, "PANIC")
				ctx.Abort()
			}
		}()
		ctx.Next()
	}
}
