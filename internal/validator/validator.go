// internal/validator/validator.go
package validator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// Validation d'un mois : "2024-12"
	_ = Validate.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		_, err := time.Parse("2006-01", s)
		return err == nil
	})

	// Validation d'une date ISO : "2024-12-25"
	_ = Validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	})

	// La chaîne n'est ni vide ni composée uniquement d'espaces
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(regexp.MustCompile(`\S`).FindString(s)) > 0
	})
}
