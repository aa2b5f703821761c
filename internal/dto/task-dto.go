package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateTaskDTO struct {
	Title        string     `json:"title" validate:"required,min=1"`
	Description  *string    `json:"description"`
	AssignedToID *uint64    `json:"assigned_to_id" validate:"omitempty,gt=0"`
	DepartmentID uint64     `json:"department_id" validate:"required,gt=0"`
	Deadline     *time.Time `json:"deadline"`
}

// UpdateTaskDTO — частичное обновление задачи. AssignedToID и Deadline
// сделаны null-типами: явный null снимает исполнителя/срок. Флаги
// *Sent заполняет контроллер по фактическому составу тела запроса.
type UpdateTaskDTO struct {
	Title        *string     `json:"title" validate:"omitempty,min=1"`
	Description  *string     `json:"description"`
	Status       *string     `json:"status" validate:"omitempty,task_status"`
	AssignedToID null.Uint64 `json:"assigned_to_id"`
	Deadline     null.Time   `json:"deadline"`

	AssignedToSent bool `json:"-"`
	DeadlineSent   bool `json:"-"`
}
