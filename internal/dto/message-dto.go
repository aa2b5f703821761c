package dto

// ChatMessageDTO — полезная нагрузка события chat_message в канале.
type ChatMessageDTO struct {
	ID       uint64 `json:"id"`
	Content  string `json:"content"`
	ChatType string `json:"chat_type"`
	Room     string `json:"room"`
}

// TaskEventDTO — полезная нагрузка событий task_created/subtask_created
// в глобальном канале tasks.
type TaskEventDTO struct {
	ID           uint64 `json:"id"`
	Title        string `json:"title"`
	DepartmentID uint64 `json:"department_id,omitempty"`
	TaskID       uint64 `json:"task_id,omitempty"`
}
