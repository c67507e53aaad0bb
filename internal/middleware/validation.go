package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hospitalar/visitas-api/internal/model"
)

// RegisterValidators installs the custom binding validators used by the
// request models.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("staffrole", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		return role == model.UserRoleAdmin || role == model.UserRoleReceptionist
	})
}
