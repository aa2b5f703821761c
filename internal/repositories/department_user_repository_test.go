package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "company-system/pkg/errors"
)

func TestDepartmentUserRepository_Integration_Membership(t *testing.T) {
	require.NotNil(t, testPool, "testPool не инициализирован")
	cleanupTables(t, testPool)
	_, _, _, employeeID, departmentID := seedCompany(t, testPool)
	repo := NewDepartmentUserRepository(testPool, zap.NewNop())

	link, err := repo.CreateDepartmentUser(context.Background(), employeeID, departmentID)
	require.NoError(t, err)
	assert.Equal(t, employeeID, link.UserID)
	assert.Equal(t, departmentID, link.DepartmentID)

	t.Run("duplicate pair is a conflict", func(t *testing.T) {
		_, err := repo.CreateDepartmentUser(context.Background(), employeeID, departmentID)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := repo.CreateDepartmentUser(context.Background(), 99999, departmentID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("is member", func(t *testing.T) {
		isMember, err := repo.IsMember(context.Background(), employeeID, departmentID)
		require.NoError(t, err)
		assert.True(t, isMember)

		isMember, err = repo.IsMember(context.Background(), employeeID, 99999)
		require.NoError(t, err)
		assert.False(t, isMember)
	})

	t.Run("list department users", func(t *testing.T) {
		links, err := repo.GetDepartmentUsers(context.Background(), departmentID)
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteDepartmentUser(context.Background(), link.ID))

		isMember, err := repo.IsMember(context.Background(), employeeID, departmentID)
		require.NoError(t, err)
		assert.False(t, isMember)

		assert.ErrorIs(t, repo.DeleteDepartmentUser(context.Background(), link.ID), apperrors.ErrNotFound)
	})
}
