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
	"company-system/pkg/types"
)

const userTable = "users"

const userColumns = `id, first_name, last_name, email, phone, password, role, company_id, created_at, updated_at`

type UserRepositoryInterface interface {
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, q Querier, user entities.User) (*entities.User, error)
	AssignCompany(ctx context.Context, q Querier, userID, companyID uint64) error
	GetCompanyUsers(ctx context.Context, companyID uint64, filter types.Filter) ([]entities.User, uint64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Password,
		&u.Role, &u.CompanyID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userColumns, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1`, userColumns, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

// CreateUser вставляет пользователя. Принимает Querier, чтобы тот же
// метод работал и внутри транзакции регистрации; при q == nil
// используется собственный пул.
func (r *UserRepository) CreateUser(ctx context.Context, q Querier, user entities.User) (*entities.User, error) {
	if q == nil {
		q = r.storage
	}
	query := fmt.Sprintf(`INSERT INTO %s (first_name, last_name, email, phone, password, role, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, userTable, userColumns)
	created, err := scanUser(q.QueryRow(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Phone, user.Password, user.Role, user.CompanyID))
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) AssignCompany(ctx context.Context, q Querier, userID, companyID uint64) error {
	query := fmt.Sprintf(`UPDATE %s SET company_id = $1, updated_at = NOW() WHERE id = $2`, userTable)
	result, err := q.Exec(ctx, query, companyID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetCompanyUsers(ctx context.Context, companyID uint64, filter types.Filter) ([]entities.User, uint64, error) {
	var total uint64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE company_id = $1`, userTable)
	if err := r.storage.QueryRow(ctx, countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE company_id = $1 ORDER BY id ASC`, userColumns, userTable)
	args := []interface{}{companyID}
	if filter.WithPagination {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}
