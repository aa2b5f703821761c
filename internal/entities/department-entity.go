package entities

import "company-system/pkg/types"

type Department struct {
	ID          uint64  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
	ManagerID   *uint64 `json:"manager_id" db:"manager_id"`

	types.BaseEntity
}
