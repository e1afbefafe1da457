package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/studybuckets/content-service/internal/errors"
	"github.com/studybuckets/content-service/internal/quiz"
	"github.com/studybuckets/content-service/internal/services"
	"github.com/studybuckets/content-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse wraps paginated collections.
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and response functionality for all
// handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
		"request_id", c.GetHeader("X-Request-ID"),
		"timestamp", time.Now().Format(time.RFC3339),
	}
	fields = append(fields, additionalFields...)
	h.logger.Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"error", err,
		"request_id", c.GetHeader("X-Request-ID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)
	h.logger.Error(message, fields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{Message: message}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}
	if err != nil {
		h.LogError(c, err, message, "status_code", statusCode)
	}
	c.JSON(statusCode, errorResp)
}

// RespondWithServiceError translates service sentinel errors into HTTP
// responses.
func (h *BaseHandler) RespondWithServiceError(c *gin.Context, err error) {
	var contentErr *services.ContentValidationError
	if errors.As(err, &contentErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Content validation failed",
			Details: contentErr.Errors,
			Code:    "content_invalid",
		})
		return
	}

	var validationErrs apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Request validation failed",
			Details: validationErrs,
			Code:    "validation_failed",
		})
		return
	}

	switch {
	case services.IsNotFound(err), errors.Is(err, quiz.ErrItemNotFound):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, quiz.ErrWrongItemType):
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, quiz.ErrSessionClosed):
		h.RespondWithError(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, services.ErrUploadTooLarge):
		h.RespondWithError(c, http.StatusRequestEntityTooLarge, err.Error(), nil)
	case errors.Is(err, services.ErrUnsupportedExtension),
		errors.Is(err, services.ErrEmptyUpload):
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "content-service",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
