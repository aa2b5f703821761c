package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"company-system/pkg/constants"
)

// RegisterCustomValidations регистрирует кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("phone_number", isPhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	if err := v.RegisterValidation("task_status", isTaskStatus); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}

func isPhoneNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^\+?\d{9,15}$`)
	return re.MatchString(fl.Field().String())
}

func isTaskStatus(fl validator.FieldLevel) bool {
	return constants.IsValidTaskStatus(fl.Field().String())
}
