package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"company-system/internal/dto"
	"company-system/internal/entities"
	apperrors "company-system/pkg/errors"
)

const subtaskTable = "subtasks"

const subtaskColumns = `id, title, description, status, task_id, completed_at, created_at, updated_at`

type SubtaskRepositoryInterface interface {
	GetSubtasksByTask(ctx context.Context, taskID uint64) ([]entities.Subtask, error)
	FindSubtask(ctx context.Context, id uint64) (*entities.Subtask, error)
	CreateSubtask(ctx context.Context, subtask entities.Subtask) (*entities.Subtask, error)
	UpdateSubtask(ctx context.Context, id uint64, dto dto.UpdateSubtaskDTO, completedAt *time.Time) (*entities.Subtask, error)
	DeleteSubtask(ctx context.Context, id uint64) error
}

type SubtaskRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewSubtaskRepository(storage *pgxpool.Pool, logger *zap.Logger) SubtaskRepositoryInterface {
	return &SubtaskRepository{storage: storage, logger: logger}
}

func scanSubtask(row pgx.Row) (*entities.Subtask, error) {
	var s entities.Subtask
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Status, &s.TaskID,
		&s.CompletedAt, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования subtask: %w", err)
	}
	return &s, nil
}

func (r *SubtaskRepository) GetSubtasksByTask(ctx context.Context, taskID uint64) ([]entities.Subtask, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE task_id = $1 ORDER BY id ASC`, subtaskColumns, subtaskTable)
	rows, err := r.storage.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subtasks := make([]entities.Subtask, 0)
	for rows.Next() {
		subtask, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		subtasks = append(subtasks, *subtask)
	}
	return subtasks, rows.Err()
}

func (r *SubtaskRepository) FindSubtask(ctx context.Context, id uint64) (*entities.Subtask, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, subtaskColumns, subtaskTable)
	return scanSubtask(r.storage.QueryRow(ctx, query, id))
}

func (r *SubtaskRepository) CreateSubtask(ctx context.Context, subtask entities.Subtask) (*entities.Subtask, error) {
	query := fmt.Sprintf(`INSERT INTO %s (title, description, status, task_id)
		VALUES ($1, $2, $3, $4) RETURNING %s`, subtaskTable, subtaskColumns)
	created, err := scanSubtask(r.storage.QueryRow(ctx, query,
		subtask.Title, subtask.Description, subtask.Status, subtask.TaskID))
	if err != nil {
		if apperrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return created, nil
}

func (r *SubtaskRepository) UpdateSubtask(ctx context.Context, id uint64, dto dto.UpdateSubtaskDTO, completedAt *time.Time) (*entities.Subtask, error) {
	updateBuilder := sq.Update(subtaskTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if dto.Title != nil {
		updateBuilder = updateBuilder.Set("title", *dto.Title)
		hasChanges = true
	}
	if dto.Description != nil {
		updateBuilder = updateBuilder.Set("description", *dto.Description)
		hasChanges = true
	}
	if dto.Status != nil {
		updateBuilder = updateBuilder.Set("status", *dto.Status)
		hasChanges = true
	}
	if completedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *completedAt)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindSubtask(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + subtaskColumns).ToSql()
	if err != nil {
		return nil, err
	}
	return scanSubtask(r.storage.QueryRow(ctx, query, args...))
}

func (r *SubtaskRepository) DeleteSubtask(ctx context.Context, id uint64) error {
	query := `DELETE FROM subtasks WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
