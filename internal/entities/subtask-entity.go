package entities

import (
	"time"

	"company-system/pkg/types"
)

type Subtask struct {
	ID          uint64     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Status      string     `json:"status" db:"status"`
	TaskID      uint64     `json:"task_id" db:"task_id"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`

	types.BaseEntity
}
