package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bradchang-ux/stock-backtest/internal/domain/dto"
	"github.com/bradchang-ux/stock-backtest/internal/logger"
)

// ErrorHandler converts errors attached to the gin context by handlers
// (via c.Error) into a single JSON error response. Handlers that write
// their own response are left untouched.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError writes the standard error envelope with the given
// status and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
