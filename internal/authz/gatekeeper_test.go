package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"company-system/internal/entities"
	"company-system/pkg/constants"
	apperrors "company-system/pkg/errors"
	"company-system/pkg/utils"
)

func admin() *entities.User {
	return &entities.User{ID: 1, Role: constants.RoleCompanyAdmin, CompanyID: utils.Uint64Ptr(10)}
}

func manager(id uint64) *entities.User {
	return &entities.User{ID: id, Role: constants.RoleDepartmentManager, CompanyID: utils.Uint64Ptr(10)}
}

func employee(id uint64) *entities.User {
	return &entities.User{ID: id, Role: constants.RoleEmployee, CompanyID: utils.Uint64Ptr(10)}
}

func TestGatekeeper_RequireCompanyAdmin(t *testing.T) {
	g := NewGatekeeper()

	assert.NoError(t, g.RequireCompanyAdmin(admin()))
	assert.ErrorIs(t, g.RequireCompanyAdmin(employee(2)), apperrors.ErrForbidden)

	// Админ без компании — аномалия, доступ закрыт
	orphan := &entities.User{ID: 3, Role: constants.RoleCompanyAdmin}
	assert.ErrorIs(t, g.RequireCompanyAdmin(orphan), apperrors.ErrForbidden)
}

func TestGatekeeper_CanManageDepartment(t *testing.T) {
	g := NewGatekeeper()
	dept := &entities.Department{ID: 5, Name: "Разработка", ManagerID: utils.Uint64Ptr(2)}

	assert.True(t, g.CanManageDepartment(admin(), dept))
	assert.True(t, g.CanManageDepartment(manager(2), dept))

	// Менеджер ЧУЖОГО отдела управлять не может
	assert.False(t, g.CanManageDepartment(manager(3), dept))
	assert.False(t, g.CanManageDepartment(employee(4), dept))

	// Отдел без менеджера — только админ
	noManager := &entities.Department{ID: 6, Name: "Без менеджера"}
	assert.True(t, g.CanManageDepartment(admin(), noManager))
	assert.False(t, g.CanManageDepartment(manager(2), noManager))
}

func TestGatekeeper_CanViewDepartment(t *testing.T) {
	g := NewGatekeeper()
	dept := &entities.Department{ID: 5, Name: "Разработка", ManagerID: utils.Uint64Ptr(2)}

	assert.True(t, g.CanViewDepartment(admin(), dept, false))
	assert.True(t, g.CanViewDepartment(manager(2), dept, false))
	assert.True(t, g.CanViewDepartment(employee(4), dept, true))
	assert.False(t, g.CanViewDepartment(employee(4), dept, false))

	assert.ErrorIs(t, g.RequireDepartmentVisibility(employee(4), dept, false), apperrors.ErrForbidden)
	assert.NoError(t, g.RequireDepartmentVisibility(employee(4), dept, true))
}

func TestGatekeeper_RequireRole(t *testing.T) {
	g := NewGatekeeper()

	assert.NoError(t, g.RequireRole(manager(2), constants.RoleCompanyAdmin, constants.RoleDepartmentManager))
	assert.ErrorIs(t, g.RequireRole(employee(4), constants.RoleCompanyAdmin), apperrors.ErrForbidden)
}
