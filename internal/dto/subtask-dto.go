package dto

type CreateSubtaskDTO struct {
	Title       string  `json:"title" validate:"required,min=1"`
	Description *string `json:"description"`
	TaskID      uint64  `json:"task_id" validate:"required,gt=0"`
}

type UpdateSubtaskDTO struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,task_status"`
}
