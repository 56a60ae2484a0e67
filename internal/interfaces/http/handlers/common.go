// Package handlers implements the HTTP handlers of the DockAI API.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/piyushjha0409/DockAI/internal/interfaces/http/middleware"
	"github.com/piyushjha0409/DockAI/pkg/errors"
	"github.com/piyushjha0409/DockAI/pkg/types/common"
)

// parsePagination extracts limit and offset from query parameters, bounded to
// sane values.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit, offset = 20, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// respond writes the standard success envelope.
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, common.APIResponse[interface{}]{
		Success:   true,
		Data:      data,
		RequestID: middleware.RequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// respondError maps an error to its HTTP status and writes the standard error
// envelope.  Internal details are masked.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	message := "internal server error"
	if status < http.StatusInternalServerError {
		message = err.Error()
	}
	c.JSON(status, common.APIResponse[interface{}]{
		Success: false,
		Error: &common.ErrorDetail{
			Code:    string(code),
			Message: message,
		},
		RequestID: middleware.RequestID(c),
		Timestamp: time.Now().UTC(),
	})
}
