package dto

type CreateDepartmentUserDTO struct {
	UserID       uint64 `json:"user_id" validate:"required,gt=0"`
	DepartmentID uint64 `json:"department_id" validate:"required,gt=0"`
}
