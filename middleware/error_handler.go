package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andradericardo/serverless-project/errors"
	"github.com/andradericardo/serverless-project/logger"
)

// ErrorResponse is the JSON shape returned for failed requests.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandler maps errors attached to the gin context onto HTTP
// responses. Handlers call c.Error(err) and return; this middleware
// decides status codes and response bodies.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()

			// Authorization violations are worth recording distinctly.
			if appError.Type == errors.ForbiddenError {
				log.Warnw("Request forbidden",
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"client_ip", c.ClientIP(),
					"detail", appError.Detail)
			} else {
				log.Errorw("Request failed",
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"error_type", string(appError.Type),
					"error_message", appError.Message,
					"status", statusCode)
			}

			response := ErrorResponse{
				Type:    string(appError.Type),
				Message: appError.Message,
				Code:    strconv.Itoa(statusCode),
			}

			// Only include details for validation and not-found errors or in debug mode
			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == errors.ValidationError ||
				appError.Type == errors.NotFoundError) {
				response.Details = appError.Detail
			}

			c.JSON(statusCode, response)
			return
		}

		// Gin binding errors come through as public errors
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			log.Warnw("Request binding error", "path", c.Request.URL.Path, "error", err)

			response := ErrorResponse{
				Type:    string(errors.ValidationError),
				Message: "Failed to bind request",
				Code:    "400",
			}
			if gin.IsDebugging() {
				response.Details = err.Error()
			}

			c.JSON(400, response)
			return
		}

		// Unknown errors
		log.Errorw("Unexpected server error", "path", c.Request.URL.Path, "error", err)

		response := ErrorResponse{
			Type:    string(errors.ServerError),
			Message: "Internal Server Error",
			Code:    "500",
		}
		if gin.IsDebugging() {
			response.Details = err.Error()
		}

		c.JSON(500, response)
	}
}
