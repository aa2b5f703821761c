package dto

// InviteUserDTO — приглашение сотрудника администратором компании.
// Роль по умолчанию — employee.
type InviteUserDTO struct {
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name" validate:"required,min=1"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone_number"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=department_manager employee"`
}
