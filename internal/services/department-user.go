package services

import (
	"context"

	"go.uber.org/zap"

	"company-system/internal/authz"
	"company-system/internal/dto"
	"company-system/internal/entities"
	"company-system/internal/repositories"
)

type DepartmentUserServiceInterface interface {
	GetDepartmentUsers(ctx context.Context, departmentID uint64) ([]entities.DepartmentUser, error)
	CreateDepartmentUser(ctx context.Context, payload dto.CreateDepartmentUserDTO) (*entities.DepartmentUser, error)
	DeleteDepartmentUser(ctx context.Context, id uint64) error
}

type DepartmentUserService struct {
	departmentUserRepo repositories.DepartmentUserRepositoryInterface
	departmentRepo     repositories.DepartmentRepositoryInterface
	userRepo           repositories.UserRepositoryInterface
	gatekeeper         *authz.Gatekeeper
	logger             *zap.Logger
}

func NewDepartmentUserService(
	departmentUserRepo repositories.DepartmentUserRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) DepartmentUserServiceInterface {
	return &DepartmentUserService{
		departmentUserRepo: departmentUserRepo,
		departmentRepo:     departmentRepo,
		userRepo:           userRepo,
		gatekeeper:         gatekeeper,
		logger:             logger,
	}
}

// GetDepartmentUsers — состав отдела видят те же, кому виден сам отдел.
func (s *DepartmentUserService) GetDepartmentUsers(ctx context.Context, departmentID uint64) ([]entities.DepartmentUser, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.FindDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	isMember, err := s.departmentUserRepo.IsMember(ctx, actor.ID, departmentID)
	if err != nil {
		return nil, err
	}
	if err := s.gatekeeper.RequireDepartmentVisibility(actor, dept, isMember); err != nil {
		return nil, err
	}

	return s.departmentUserRepo.GetDepartmentUsers(ctx, departmentID)
}

// CreateDepartmentUser добавляет сотрудника в отдел. Право определяется
// по ЦЕЛЕВОМУ отделу: админ компании либо менеджер этого отдела.
// Повторное добавление той же пары отклоняется как конфликт.
func (s *DepartmentUserService) CreateDepartmentUser(ctx context.Context, payload dto.CreateDepartmentUserDTO) (*entities.DepartmentUser, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.FindDepartment(ctx, payload.DepartmentID)
	if err != nil {
		return nil, err
	}
	if err := s.gatekeeper.RequireDepartmentManagement(actor, dept); err != nil {
		return nil, err
	}

	// Добавляемый пользователь должен существовать
	if _, err := s.userRepo.FindUserByID(ctx, payload.UserID); err != nil {
		return nil, err
	}

	link, err := s.departmentUserRepo.CreateDepartmentUser(ctx, payload.UserID, payload.DepartmentID)
	if err != nil {
		s.logger.Warn("Добавление в отдел не удалось",
			zap.Uint64("userID", payload.UserID),
			zap.Uint64("departmentID", payload.DepartmentID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Сотрудник добавлен в отдел",
		zap.Uint64("userID", payload.UserID),
		zap.Uint64("departmentID", payload.DepartmentID),
	)
	return link, nil
}

// DeleteDepartmentUser убирает сотрудника из отдела. Право — по отделу,
// к которому относится удаляемая связь.
func (s *DepartmentUserService) DeleteDepartmentUser(ctx context.Context, id uint64) error {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return err
	}

	link, err := s.departmentUserRepo.FindDepartmentUser(ctx, id)
	if err != nil {
		return err
	}
	dept, err := s.departmentRepo.FindDepartment(ctx, link.DepartmentID)
	if err != nil {
		return err
	}
	if err := s.gatekeeper.RequireDepartmentManagement(actor, dept); err != nil {
		return err
	}

	return s.departmentUserRepo.DeleteDepartmentUser(ctx, id)
}
