package validator

import (
	"attendly.io/infrastructure/config"
	"github.com/go-playground/validator/v10"
)

// validateDescriptorLength checks a face descriptor slice against the
// configured model dimensionality. Registration and verification payloads
// both carry the rule so malformed vectors never reach the matching core.
func validateDescriptorLength(fl validator.FieldLevel) bool {
	descriptor, ok := fl.Field().Interface().([]float64)
	if !ok {
		return false
	}
	return len(descriptor) == config.Get().Face.DescriptorDimensions
}
