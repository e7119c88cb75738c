package publication

import (
	"github.com/go-playground/validator/v10"

	"github.com/edunova/colegio/core"
)

var (
	audienceTag  = "audience"
	audienceText = "unknown audience"
)

func init() {
	_ = core.Validate.RegisterValidation(audienceTag, audienceValidation)
	core.RegisterCustomTranslation(audienceTag, audienceText)
}

func audienceValidation(fl validator.FieldLevel) bool {
	audience, ok := fl.Field().Interface().(Audience)
	if !ok {
		return false
	}
	return audience.Valid()
}
