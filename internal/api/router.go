package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bradchang-ux/stock-backtest/internal/middleware"
)

// NewRouter builds the Gin engine: global middleware chain (request ID,
// structured request log, panic recovery, error handler, per-IP rate
// limit), a per-request timeout, swagger docs, and the v1 routes.
//
// Health and readiness probes are registered separately by
// app.InitializeApp.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	// Upstream fetches dominate request latency; cap the whole request.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/backtest", handler.GetBacktest)
		v1.GET("/backtest/window", handler.GetWindow)
	}

	return router
}
