package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/charlesng35/favorites/pkg/errors"
	"github.com/charlesng35/favorites/pkg/logger"
)

// ErrorBody is the payload rendered for every failed request.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Issues  any    `json:"issues,omitempty"`
}

// Page is the list envelope. NextCursor is null once the last page is reached.
type Page struct {
	Data       any   `json:"data"`
	NextCursor *uint `json:"nextCursor"`
}

// Success writes data as the JSON body with the given status.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Paginated writes a list page envelope.
func Paginated(c *gin.Context, data interface{}, nextCursor *uint) {
	c.JSON(http.StatusOK, Page{Data: data, NextCursor: nextCursor})
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}

// Error writes a JSON error response derived from an AppError. Internal
// details of server side failures are logged and never rendered.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
		}
		if appErr.Internal != nil {
			fields = append(fields, zap.Error(appErr.Internal))
		}
		if rid, ok := c.Get("request_id"); ok {
			fields = append(fields, zap.Any("request_id", rid))
		}
		logger.WithModule("http").Error(appErr.Message, fields...)
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(status, ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Issues:  appErr.Issues,
	})
}
