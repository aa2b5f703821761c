package authz

import (
	"company-system/internal/entities"
	"company-system/pkg/constants"
	apperrors "company-system/pkg/errors"
)

// Gatekeeper — единая точка проверок прав. Каждая мутирующая операция
// проходит ровно одну проверку ДО обращения к хранилищу; при отказе
// операция обрывается без частичных побочных эффектов.
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// RequireRole — проверка принадлежности роли набору разрешённых.
func (g *Gatekeeper) RequireRole(actor *entities.User, roles ...string) error {
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// RequireCompanyAdmin — оператор должен быть администратором компании
// и состоять в компании.
func (g *Gatekeeper) RequireCompanyAdmin(actor *entities.User) error {
	if actor.Role != constants.RoleCompanyAdmin || actor.CompanyID == nil {
		return apperrors.ErrForbidden
	}
	return nil
}

// CanManageDepartment — администратор компании либо назначенный
// менеджер этого отдела.
func (g *Gatekeeper) CanManageDepartment(actor *entities.User, dept *entities.Department) bool {
	if actor.Role == constants.RoleCompanyAdmin {
		return true
	}
	return dept.ManagerID != nil && *dept.ManagerID == actor.ID
}

// RequireDepartmentManagement — то же, но как guard-ошибка.
func (g *Gatekeeper) RequireDepartmentManagement(actor *entities.User, dept *entities.Department) error {
	if !g.CanManageDepartment(actor, dept) {
		return apperrors.ErrForbidden
	}
	return nil
}

// CanViewDepartment — видимость отдела: админ, его менеджер или
// подтверждённый участник.
func (g *Gatekeeper) CanViewDepartment(actor *entities.User, dept *entities.Department, isMember bool) bool {
	if g.CanManageDepartment(actor, dept) {
		return true
	}
	return isMember
}

func (g *Gatekeeper) RequireDepartmentVisibility(actor *entities.User, dept *entities.Department, isMember bool) error {
	if !g.CanViewDepartment(actor, dept, isMember) {
		return apperrors.ErrForbidden
	}
	return nil
}
