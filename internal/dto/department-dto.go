package dto

import "github.com/aarondl/null/v8"

type CreateDepartmentDTO struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Description *string `json:"description"`
	ManagerID   *uint64 `json:"manager_id" validate:"omitempty,gt=0"`
}

// UpdateDepartmentDTO — частичное обновление: отсутствующие поля не
// трогаются. ManagerID — null.Uint64: явный null снимает менеджера.
// ManagerIDSent заполняет контроллер по фактическому составу тела.
type UpdateDepartmentDTO struct {
	Name        *string     `json:"name" validate:"omitempty,min=1"`
	Description *string     `json:"description"`
	ManagerID   null.Uint64 `json:"manager_id"`

	ManagerIDSent bool `json:"-"`
}
