package repositories

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"company-system/internal/dto"
	"company-system/internal/entities"
	apperrors "company-system/pkg/errors"
	"company-system/pkg/types"
	"company-system/pkg/utils"
)

func TestDepartmentRepository_Integration_CRUD(t *testing.T) {
	require.NotNil(t, testPool, "testPool не инициализирован")
	cleanupTables(t, testPool)
	_, _, managerID, _, _ := seedCompany(t, testPool)
	repo := NewDepartmentRepository(testPool, zap.NewNop())

	created, err := repo.CreateDepartment(context.Background(), entities.Department{
		Name:        "Поддержка",
		Description: utils.StringPtr("Первая линия"),
	})
	require.NoError(t, err)
	assert.Nil(t, created.ManagerID)

	t.Run("update assigns manager", func(t *testing.T) {
		updated, err := repo.UpdateDepartment(context.Background(), created.ID, dto.UpdateDepartmentDTO{
			ManagerID: null.Uint64From(managerID),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.ManagerID)
		assert.Equal(t, managerID, *updated.ManagerID)
	})

	t.Run("explicit null removes manager", func(t *testing.T) {
		updated, err := repo.UpdateDepartment(context.Background(), created.ID, dto.UpdateDepartmentDTO{
			ManagerIDSent: true,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.ManagerID)
	})

	t.Run("search by name", func(t *testing.T) {
		departments, total, err := repo.GetDepartments(context.Background(), types.Filter{Search: "поддерж"})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, departments, 1)
		assert.Equal(t, "Поддержка", departments[0].Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteDepartment(context.Background(), created.ID))
		_, err := repo.FindDepartment(context.Background(), created.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.ErrorIs(t, repo.DeleteDepartment(context.Background(), created.ID), apperrors.ErrNotFound)
	})
}
