package entities

import "company-system/pkg/types"

// DepartmentUser — связь пользователя с отделом. Пара
// (user_id, department_id) уникальна.
type DepartmentUser struct {
	ID           uint64 `json:"id" db:"id"`
	UserID       uint64 `json:"user_id" db:"user_id"`
	DepartmentID uint64 `json:"department_id" db:"department_id"`

	types.BaseEntity
}
