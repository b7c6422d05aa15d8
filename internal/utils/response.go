// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every error response: {"detail": ...}. Detail is
// a string for request errors and a list for schema errors.
type ErrorBody struct {
	Detail interface{} `json:"detail"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func ErrorResponse(c *gin.Context, statusCode int, detail interface{}) {
	c.JSON(statusCode, ErrorBody{Detail: detail})
}

func BadRequestResponse(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Bad request"
	}
	ErrorResponse(c, http.StatusBadRequest, detail)
}

func NotFoundResponse(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Not found"
	}
	ErrorResponse(c, http.StatusNotFound, detail)
}

func InternalErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}

func TooManyRequestsResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
}

// ValidationErrorResponse reports a body that does not match the expected
// schema.
func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	if len(errors) == 0 {
		errors = []ValidationError{{Field: "body", Tag: "invalid", Message: "Invalid request body"}}
	}
	ErrorResponse(c, http.StatusUnprocessableEntity, errors)
}

func GetRequestIDFromContext(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if idStr, ok := id.(string); ok {
			return idStr
		}
	}
	return ""
}
