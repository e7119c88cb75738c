package course

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/edunova/colegio/core"
)

var (
	dniTag  = "dni"
	dniText = "invalid DNI; 8 digits expected"
	dniRgx  = regexp.MustCompile(`^\d{8}$`)
)

func init() {
	_ = core.Validate.RegisterValidation(dniTag, dniValidation)
	core.RegisterCustomTranslation(dniTag, dniText)
}

// dniValidation checks that the provided value is a national identity number.
func dniValidation(fl validator.FieldLevel) bool {
	dni, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return dniRgx.MatchString(dni)
}
