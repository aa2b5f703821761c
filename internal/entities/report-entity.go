package entities

import "time"

type TaskReportFilter struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	DepartmentIDs []uint64
	Status        string
}

type TaskReportRow struct {
	ID             uint64     `json:"id"`
	Title          string     `json:"title"`
	Status         string     `json:"status"`
	DepartmentName string     `json:"department_name"`
	AssigneeName   string     `json:"assignee_name"`
	Deadline       *time.Time `json:"deadline"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      *time.Time `json:"created_at"`
}
