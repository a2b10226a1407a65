package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// AppError carries the HTTP status a domain failure should surface with.
// Message is user facing (Thai); Err is logged only.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Wrap attaches cause for logging and returns e.
func (e *AppError) Wrap(cause error) *AppError {
	e.Err = cause
	return e
}

func NewBadRequest(msg string) *AppError { return &AppError{Status: http.StatusBadRequest, Message: msg} }
func NewUnauthorized(msg string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: msg}
}
func NewForbidden(msg string) *AppError { return &AppError{Status: http.StatusForbidden, Message: msg} }
func NewNotFound(msg string) *AppError  { return &AppError{Status: http.StatusNotFound, Message: msg} }
func NewConflict(msg string) *AppError  { return &AppError{Status: http.StatusConflict, Message: msg} }

// NewInternal wraps an unexpected failure; the cause never reaches the client.
func NewInternal(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}

// StatusOf returns the HTTP status for err, 500 for anything that is not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// HandleErrors is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: MsgInternal,
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps err onto a response. Internal causes are logged and hidden.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternal(err)
	}
	if appErr.Status >= http.StatusInternalServerError {
		GetLogger().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(appErr.Status, ErrorResponse{Message: appErr.Message})
		return
	}
	GetLogger().Debug("request rejected",
		zap.String("path", c.FullPath()),
		zap.Int("status", appErr.Status),
		zap.String("message", appErr.Message),
	)
	c.AbortWithStatusJSON(appErr.Status, ErrorResponse{Message: appErr.Message})
}
