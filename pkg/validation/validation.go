// Package validation holds the process-wide go-playground validator and the
// tag checks built on it.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var defaultValidator = validator.New(validator.WithRequiredStructEnabled())

// MustRegister adds a custom tag to the shared validator. It is meant for
// package initialisation and panics on a bad registration.
func MustRegister(tag string, fn func(value string) bool) {
	err := defaultValidator.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Satisfies reports whether value passes every rule in tag, for example
// "len=12" or "min=1,max=31". Tags are evaluated even for zero values.
func Satisfies(value any, tag string) bool {
	return defaultValidator.Var(value, tag) == nil
}
