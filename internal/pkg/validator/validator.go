package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate проверяет структуру по validate-тегам; используется для
// входящих DTO запросов на подбор объектов
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator отдаёт общий валидатор для регистрации кастомных правил
func GetValidator() *validator.Validate {
	return validate
}
