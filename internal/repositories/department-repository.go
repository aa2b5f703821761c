package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"company-system/internal/dto"
	"company-system/internal/entities"
	apperrors "company-system/pkg/errors"
	"company-system/pkg/types"
)

const departmentTable = "departments"

const departmentColumns = `id, name, description, manager_id, created_at, updated_at`

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, department entities.Department) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id uint64, dto dto.UpdateDepartmentDTO) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDepartmentRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage, logger: logger}
}

func scanDepartment(row pgx.Row) (*entities.Department, error) {
	var d entities.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.ManagerID, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования department: %w", err)
	}
	return &d, nil
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error) {
	var total uint64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, departmentTable)
	countArgs := []interface{}{}
	if filter.Search != "" {
		countQuery += " WHERE name ILIKE $1"
		countArgs = append(countArgs, "%"+filter.Search+"%")
	}
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Department{}, 0, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, departmentColumns, departmentTable)
	args := []interface{}{}
	if filter.Search != "" {
		query += " WHERE name ILIKE $1"
		args = append(args, "%"+filter.Search+"%")
	}
	query += " ORDER BY id ASC"
	if filter.WithPagination {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	departments := make([]entities.Department, 0)
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		departments = append(departments, *dept)
	}
	return departments, total, rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, departmentColumns, departmentTable)
	return scanDepartment(r.storage.QueryRow(ctx, query, id))
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, department entities.Department) (*entities.Department, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, description, manager_id) VALUES ($1, $2, $3) RETURNING %s`,
		departmentTable, departmentColumns)
	return scanDepartment(r.storage.QueryRow(ctx, query, department.Name, department.Description, department.ManagerID))
}

// UpdateDepartment применяет только присланные поля; отсутствующие в
// патче не трогаются.
func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, id uint64, dto dto.UpdateDepartmentDTO) (*entities.Department, error) {
	updateBuilder := sq.Update(departmentTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if dto.Name != nil {
		updateBuilder = updateBuilder.Set("name", *dto.Name)
		hasChanges = true
	}
	if dto.Description != nil {
		updateBuilder = updateBuilder.Set("description", *dto.Description)
		hasChanges = true
	}
	if dto.ManagerID.Valid {
		updateBuilder = updateBuilder.Set("manager_id", dto.ManagerID.Uint64)
		hasChanges = true
	} else if dto.ManagerIDSent {
		// Явный null — снять менеджера
		updateBuilder = updateBuilder.Set("manager_id", nil)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindDepartment(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + departmentColumns).ToSql()
	if err != nil {
		return nil, err
	}
	return scanDepartment(r.storage.QueryRow(ctx, query, args...))
}

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, id uint64) error {
	query := `DELETE FROM departments WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
