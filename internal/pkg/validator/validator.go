package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format used by the catalog search.
const DateLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("isodate", isoDate)
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// isoDate accepts strings in DateLayout form.
func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}
