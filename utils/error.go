package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WorkflowErrorResponse is the body returned for workflow failures.
type WorkflowErrorResponse struct {
	Error      string   `json:"error"`
	Code       string   `json:"code"`
	Retryable  bool     `json:"retryable"`
	Fields     []string `json:"fields,omitempty"`
	StagingKey string   `json:"stagingKey,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// WorkflowJSONError translates err into a user-facing notification. Errors that
// are not workflow errors are reported as retryable network failures so the
// caller keeps its draft.
func WorkflowJSONError(c *gin.Context, err error) {
	wfErr, ok := AsWorkflowError(err)
	if !ok {
		wfErr, _ = AsWorkflowError(NewNetworkFailure("unexpected failure, please try again", err))
	}

	status := HTTPStatus(wfErr.Code)
	logger := GetLogger()
	if status >= http.StatusInternalServerError {
		logger.Error("workflow error", zap.String("code", string(wfErr.Code)), zap.Error(err))
	} else {
		logger.Info("workflow notice", zap.String("code", string(wfErr.Code)), zap.String("message", wfErr.Message))
	}

	c.AbortWithStatusJSON(status, WorkflowErrorResponse{
		Error:      wfErr.Message,
		Code:       string(wfErr.Code),
		Retryable:  wfErr.Retryable,
		Fields:     wfErr.Fields,
		StagingKey: wfErr.StagingKey,
	})
}
