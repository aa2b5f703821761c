package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"company-system/internal/entities"
	apperrors "company-system/pkg/errors"
)

const messageTable = "messages"

type MessageRepositoryInterface interface {
	CreateMessage(ctx context.Context, message entities.Message) (*entities.Message, error)
	GetRoomMessages(ctx context.Context, chatType, room string, limit int) ([]entities.Message, error)
}

type MessageRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMessageRepository(storage *pgxpool.Pool, logger *zap.Logger) MessageRepositoryInterface {
	return &MessageRepository{storage: storage, logger: logger}
}

func scanMessage(row pgx.Row) (*entities.Message, error) {
	var m entities.Message
	err := row.Scan(&m.ID, &m.Content, &m.ChatType, &m.Room, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования message: %w", err)
	}
	return &m, nil
}

func (r *MessageRepository) CreateMessage(ctx context.Context, message entities.Message) (*entities.Message, error) {
	query := fmt.Sprintf(`INSERT INTO %s (content, chat_type, room) VALUES ($1, $2, $3)
		RETURNING id, content, chat_type, room, created_at`, messageTable)
	return scanMessage(r.storage.QueryRow(ctx, query, message.Content, message.ChatType, message.Room))
}

// GetRoomMessages выбирает историю по паре (тип чата, комната):
// номера комнат не уникальны между приватными чатами и чатами отделов.
func (r *MessageRepository) GetRoomMessages(ctx context.Context, chatType, room string, limit int) ([]entities.Message, error) {
	query := fmt.Sprintf(`SELECT id, content, chat_type, room, created_at FROM %s
		WHERE chat_type = $1 AND room = $2 ORDER BY id DESC LIMIT $3`, messageTable)
	rows, err := r.storage.Query(ctx, query, chatType, room, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]entities.Message, 0)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *message)
	}
	return messages, rows.Err()
}
