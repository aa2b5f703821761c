package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"company-system/internal/entities"
	apperrors "company-system/pkg/errors"
)

func TestUserRepository_Integration_CreateUser(t *testing.T) {
	require.NotNil(t, testPool, "testPool не инициализирован")
	cleanupTables(t, testPool)
	repo := NewUserRepository(testPool, zap.NewNop())

	created, err := repo.CreateUser(context.Background(), nil, entities.User{
		FirstName: "Новый",
		LastName:  "Пользователь",
		Email:     "new@test.tj",
		Phone:     "+992111111111",
		Password:  "hash",
		Role:      "employee",
	})
	require.NoError(t, err)
	require.True(t, created.ID > 0)
	assert.Nil(t, created.CompanyID)

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := repo.CreateUser(context.Background(), nil, entities.User{
			FirstName: "Дубль",
			LastName:  "Пользователь",
			Email:     "new@test.tj",
			Phone:     "+992222222222",
			Password:  "hash",
			Role:      "employee",
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("find by email", func(t *testing.T) {
		found, err := repo.FindUserByEmail(context.Background(), "new@test.tj")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)

		_, err = repo.FindUserByEmail(context.Background(), "ghost@test.tj")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestUserRepository_Integration_RegisterTransaction(t *testing.T) {
	cleanupTables(t, testPool)
	userRepo := NewUserRepository(testPool, zap.NewNop())
	companyRepo := NewCompanyRepository(testPool, zap.NewNop())
	txManager := NewTxManager(testPool)

	// Успешная регистрация: пользователь, компания, привязка
	err := txManager.RunInTransaction(context.Background(), func(tx pgx.Tx) error {
		admin, err := userRepo.CreateUser(context.Background(), tx, entities.User{
			FirstName: "Админ", LastName: "Новый", Email: "owner@test.tj",
			Phone: "+992333333333", Password: "hash", Role: "company_admin",
		})
		if err != nil {
			return err
		}
		company, err := companyRepo.CreateCompany(context.Background(), tx, entities.Company{
			Name: "Новая компания", Address: "Душанбе", Phone: "+992000000099",
		})
		if err != nil {
			return err
		}
		return userRepo.AssignCompany(context.Background(), tx, admin.ID, company.ID)
	})
	require.NoError(t, err)

	admin, err := userRepo.FindUserByEmail(context.Background(), "owner@test.tj")
	require.NoError(t, err)
	require.NotNil(t, admin.CompanyID)

	// Конфликт имени компании откатывает и пользователя
	err = txManager.RunInTransaction(context.Background(), func(tx pgx.Tx) error {
		u, err := userRepo.CreateUser(context.Background(), tx, entities.User{
			FirstName: "Другой", LastName: "Админ", Email: "second@test.tj",
			Phone: "+992444444444", Password: "hash", Role: "company_admin",
		})
		if err != nil {
			return err
		}
		_, err = companyRepo.CreateCompany(context.Background(), tx, entities.Company{
			Name: "Новая компания", Address: "Худжанд", Phone: "+992000000098",
		})
		if err != nil {
			return err
		}
		_ = u
		return nil
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = userRepo.FindUserByEmail(context.Background(), "second@test.tj")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "транзакция должна была откатиться целиком")
}
