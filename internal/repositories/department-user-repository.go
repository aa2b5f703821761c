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

const departmentUserTable = "department_users"

type DepartmentUserRepositoryInterface interface {
	FindDepartmentUser(ctx context.Context, id uint64) (*entities.DepartmentUser, error)
	GetDepartmentUsers(ctx context.Context, departmentID uint64) ([]entities.DepartmentUser, error)
	IsMember(ctx context.Context, userID, departmentID uint64) (bool, error)
	CreateDepartmentUser(ctx context.Context, userID, departmentID uint64) (*entities.DepartmentUser, error)
	DeleteDepartmentUser(ctx context.Context, id uint64) error
}

type DepartmentUserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDepartmentUserRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentUserRepositoryInterface {
	return &DepartmentUserRepository{storage: storage, logger: logger}
}

func scanDepartmentUser(row pgx.Row) (*entities.DepartmentUser, error) {
	var du entities.DepartmentUser
	err := row.Scan(&du.ID, &du.UserID, &du.DepartmentID, &du.CreatedAt, &du.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования department_user: %w", err)
	}
	return &du, nil
}

func (r *DepartmentUserRepository) FindDepartmentUser(ctx context.Context, id uint64) (*entities.DepartmentUser, error) {
	query := `SELECT id, user_id, department_id, created_at, updated_at FROM department_users WHERE id = $1`
	return scanDepartmentUser(r.storage.QueryRow(ctx, query, id))
}

func (r *DepartmentUserRepository) GetDepartmentUsers(ctx context.Context, departmentID uint64) ([]entities.DepartmentUser, error) {
	query := `SELECT id, user_id, department_id, created_at, updated_at FROM department_users
		WHERE department_id = $1 ORDER BY id ASC`
	rows, err := r.storage.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]entities.DepartmentUser, 0)
	for rows.Next() {
		link, err := scanDepartmentUser(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

func (r *DepartmentUserRepository) IsMember(ctx context.Context, userID, departmentID uint64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM department_users WHERE user_id = $1 AND department_id = $2)`
	var exists bool
	if err := r.storage.QueryRow(ctx, query, userID, departmentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateDepartmentUser добавляет связь; дубликат пары
// (user_id, department_id) отклоняется как конфликт ещё в БД.
func (r *DepartmentUserRepository) CreateDepartmentUser(ctx context.Context, userID, departmentID uint64) (*entities.DepartmentUser, error) {
	query := `INSERT INTO department_users (user_id, department_id) VALUES ($1, $2)
		RETURNING id, user_id, department_id, created_at, updated_at`
	link, err := scanDepartmentUser(r.storage.QueryRow(ctx, query, userID, departmentID))
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		if apperrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return link, nil
}

func (r *DepartmentUserRepository) DeleteDepartmentUser(ctx context.Context, id uint64) error {
	query := `DELETE FROM department_users WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
