package entities

import "time"

// Message — сообщение чата. Запись append-only: сообщения никогда
// не обновляются и не удаляются.
type Message struct {
	ID        uint64     `json:"id" db:"id"`
	Content   string     `json:"content" db:"content"`
	ChatType  string     `json:"chat_type" db:"chat_type"`
	Room      string     `json:"room" db:"room"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}
