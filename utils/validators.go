package utils

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidateISODate is the "isodate" binding rule for YYYY-MM-DD query params.
func ValidateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
