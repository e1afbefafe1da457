package services

import (
	"errors"

	apperrors "github.com/studybuckets/content-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Bucket specific errors
	ErrBucketNotFound = errors.New("bucket not found")

	// Question set specific errors
	ErrQuestionSetNotFound = errors.New("question set not found")
	ErrContentInvalid      = errors.New("learning content failed schema validation")

	// Ingestion specific errors
	ErrUploadTooLarge        = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedExtension  = errors.New("uploaded file has an unsupported extension")
	ErrEmptyUpload           = errors.New("uploaded content is empty")

	// Quiz session specific errors
	ErrSessionNotFound = errors.New("quiz session not found")
)

// Use shared validation errors from the errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a single-field validation error.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrBucketNotFound) ||
		errors.Is(err, ErrQuestionSetNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrContentInvalid) {
		return true
	}
	var verrs ValidationErrors
	return errors.As(err, &verrs)
}
