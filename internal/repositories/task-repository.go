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
	"company-system/pkg/types"
)

const taskTable = "tasks"

const taskColumns = `id, title, description, status, assigned_to_id, department_id, deadline, completed_at, created_at, updated_at`

var taskAllowedFilterFields = map[string]string{
	"status":        "status",
	"department_id": "department_id",
}

type TaskRepositoryInterface interface {
	GetTasks(ctx context.Context, filter types.Filter) ([]entities.Task, uint64, error)
	GetTasksByAssignee(ctx context.Context, userID uint64) ([]entities.Task, error)
	FindTask(ctx context.Context, id uint64) (*entities.Task, error)
	CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uint64, dto dto.UpdateTaskDTO, completedAt *time.Time) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
}

type TaskRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTaskRepository(storage *pgxpool.Pool, logger *zap.Logger) TaskRepositoryInterface {
	return &TaskRepository{storage: storage, logger: logger}
}

func scanTask(row pgx.Row) (*entities.Task, error) {
	var t entities.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.AssignedToID,
		&t.DepartmentID, &t.Deadline, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования task: %w", err)
	}
	return &t, nil
}

func (r *TaskRepository) GetTasks(ctx context.Context, filter types.Filter) ([]entities.Task, uint64, error) {
	conditions := sq.And{}
	if filter.Search != "" {
		conditions = append(conditions, sq.ILike{"title": "%" + filter.Search + "%"})
	}
	for key, value := range filter.Filter {
		if column, ok := taskAllowedFilterFields[key]; ok {
			conditions = append(conditions, sq.Eq{column: value})
		}
	}

	countBuilder := sq.Select("COUNT(*)").From(taskTable).PlaceholderFormat(sq.Dollar)
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
	}
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Task{}, 0, nil
	}

	selectBuilder := sq.Select(taskColumns).From(taskTable).
		PlaceholderFormat(sq.Dollar).
		OrderBy("id DESC")
	if len(conditions) > 0 {
		selectBuilder = selectBuilder.Where(conditions)
	}
	if filter.WithPagination {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}
	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, total, rows.Err()
}

func (r *TaskRepository) GetTasksByAssignee(ctx context.Context, userID uint64) ([]entities.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE assigned_to_id = $1 ORDER BY id DESC`, taskColumns, taskTable)
	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) FindTask(ctx context.Context, id uint64) (*entities.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, taskColumns, taskTable)
	return scanTask(r.storage.QueryRow(ctx, query, id))
}

func (r *TaskRepository) CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	query := fmt.Sprintf(`INSERT INTO %s (title, description, status, assigned_to_id, department_id, deadline)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`, taskTable, taskColumns)
	created, err := scanTask(r.storage.QueryRow(ctx, query,
		task.Title, task.Description, task.Status, task.AssignedToID, task.DepartmentID, task.Deadline))
	if err != nil {
		if apperrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return created, nil
}

// UpdateTask применяет только присланные поля. completedAt передаёт
// сервис: он выставляется один раз при первом переходе в done и
// дальше не меняется.
func (r *TaskRepository) UpdateTask(ctx context.Context, id uint64, dto dto.UpdateTaskDTO, completedAt *time.Time) (*entities.Task, error) {
	updateBuilder := sq.Update(taskTable).
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
	if dto.AssignedToID.Valid {
		updateBuilder = updateBuilder.Set("assigned_to_id", dto.AssignedToID.Uint64)
		hasChanges = true
	} else if dto.AssignedToSent {
		// Явный null — снять исполнителя
		updateBuilder = updateBuilder.Set("assigned_to_id", nil)
		hasChanges = true
	}
	if dto.Deadline.Valid {
		updateBuilder = updateBuilder.Set("deadline", dto.Deadline.Time)
		hasChanges = true
	} else if dto.DeadlineSent {
		updateBuilder = updateBuilder.Set("deadline", nil)
		hasChanges = true
	}
	if completedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *completedAt)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindTask(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + taskColumns).ToSql()
	if err != nil {
		return nil, err
	}
	return scanTask(r.storage.QueryRow(ctx, query, args...))
}

// DeleteTask удаляет задачу; подзадачи каскадно удаляет БД
// (FK ON DELETE CASCADE).
func (r *TaskRepository) DeleteTask(ctx context.Context, id uint64) error {
	query := `DELETE FROM tasks WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
