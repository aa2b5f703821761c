package entities

import (
	"time"

	"company-system/pkg/types"
)

type Task struct {
	ID           uint64     `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description" db:"description"`
	Status       string     `json:"status" db:"status"`
	AssignedToID *uint64    `json:"assigned_to_id" db:"assigned_to_id"`
	DepartmentID uint64     `json:"department_id" db:"department_id"`
	Deadline     *time.Time `json:"deadline" db:"deadline"`
	CompletedAt  *time.Time `json:"completed_at" db:"completed_at"`

	types.BaseEntity
}
