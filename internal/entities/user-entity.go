package entities

import "company-system/pkg/types"

type User struct {
	ID        uint64 `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`

	Password string `json:"-" db:"password"`

	Role      string  `json:"role" db:"role"`
	CompanyID *uint64 `json:"company_id" db:"company_id"`

	types.BaseEntity
}
