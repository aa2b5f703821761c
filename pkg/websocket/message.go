package websocket

import (
	"fmt"
	"time"
)

// Имя глобального канала с событиями по задачам.
const TasksChannel = "tasks"

// Типы событий, публикуемых в каналы.
const (
	EventTaskCreated       = "task_created"
	EventSubtaskCreated    = "subtask_created"
	EventDepartmentCreated = "new_department"
	EventChatMessage       = "chat_message"
)

// PrivateChannel строит ключ канала приватной комнаты.
func PrivateChannel(roomID string) string {
	return "private:" + roomID
}

// DepartmentChannel строит ключ канала чата отдела.
func DepartmentChannel(departmentID uint64) string {
	return fmt.Sprintf("dept:%d", departmentID)
}

// Envelope — "конверт", в котором уходят все сообщения в канал.
// Тип сообщения позволяет фронтенду понять, что с ним делать.
type Envelope struct {
	EventID   string      `json:"eventId"`
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
