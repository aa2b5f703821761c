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

const companyTable = "companies"

type CompanyRepositoryInterface interface {
	FindCompany(ctx context.Context, id uint64) (*entities.Company, error)
	CreateCompany(ctx context.Context, q Querier, company entities.Company) (*entities.Company, error)
}

type CompanyRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCompanyRepository(storage *pgxpool.Pool, logger *zap.Logger) CompanyRepositoryInterface {
	return &CompanyRepository{storage: storage, logger: logger}
}

func scanCompany(row pgx.Row) (*entities.Company, error) {
	var c entities.Company
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepository) FindCompany(ctx context.Context, id uint64) (*entities.Company, error) {
	query := `SELECT id, name, address, phone, created_at, updated_at FROM companies WHERE id = $1`
	return scanCompany(r.storage.QueryRow(ctx, query, id))
}

func (r *CompanyRepository) CreateCompany(ctx context.Context, q Querier, company entities.Company) (*entities.Company, error) {
	query := `INSERT INTO companies (name, address, phone) VALUES ($1, $2, $3)
		RETURNING id, name, address, phone, created_at, updated_at`
	created, err := scanCompany(q.QueryRow(ctx, query, company.Name, company.Address, company.Phone))
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return created, nil
}
