package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern accepts digits with the usual separators.
var phonePattern = regexp.MustCompile(`^[0-9+][0-9\-() ]*$`)

var registerOnce sync.Once

// RegisterValidations installs the custom binding validators. Safe to call
// from both main and tests.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})
}
