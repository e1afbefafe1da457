package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/studybuckets/content-service/internal/errors"
)

// Validator is the main validator instance combining request-struct
// validation with the content schema validators.
type Validator struct {
	structValidator  *validator.Validate
	contentValidator *ContentValidator
	legacyValidator  *LegacyValidator
}

// New creates a new centralized validator instance.
func New() *Validator {
	structValidator := validator.New()

	// Report json field names in struct validation errors
	structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		structValidator:  structValidator,
		contentValidator: NewContentValidator(),
		legacyValidator:  NewLegacyValidator(nil),
	}
}

// ValidateStruct validates struct tags on request DTOs.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if verrs := errors.ToValidationErrors(err); len(verrs) > 0 {
			return verrs
		}
		return err
	}
	return nil
}

// Content returns the learning content schema validator.
func (v *Validator) Content() *ContentValidator {
	return v.contentValidator
}

// Legacy returns the standalone question-bundle validator.
func (v *Validator) Legacy() *LegacyValidator {
	return v.legacyValidator
}
