package services

import (
	"context"

	"go.uber.org/zap"

	"company-system/internal/authz"
	"company-system/internal/dto"
	"company-system/internal/entities"
	"company-system/internal/repositories"
	"company-system/pkg/types"
	appws "company-system/pkg/websocket"
)

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentService struct {
	departmentRepo     repositories.DepartmentRepositoryInterface
	departmentUserRepo repositories.DepartmentUserRepositoryInterface
	userRepo           repositories.UserRepositoryInterface
	gatekeeper         *authz.Gatekeeper
	hub                *appws.Hub
	logger             *zap.Logger
}

func NewDepartmentService(
	departmentRepo repositories.DepartmentRepositoryInterface,
	departmentUserRepo repositories.DepartmentUserRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	hub *appws.Hub,
	logger *zap.Logger,
) DepartmentServiceInterface {
	return &DepartmentService{
		departmentRepo:     departmentRepo,
		departmentUserRepo: departmentUserRepo,
		userRepo:           userRepo,
		gatekeeper:         gatekeeper,
		hub:                hub,
		logger:             logger,
	}
}

func (s *DepartmentService) GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error) {
	if _, err := actorFromContext(ctx, s.userRepo); err != nil {
		return nil, 0, err
	}
	return s.departmentRepo.GetDepartments(ctx, filter)
}

// FindDepartment — просмотр отдела: админ, его менеджер или
// подтверждённый участник.
func (s *DepartmentService) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.FindDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	isMember, err := s.departmentUserRepo.IsMember(ctx, actor.ID, id)
	if err != nil {
		return nil, err
	}
	if err := s.gatekeeper.RequireDepartmentVisibility(actor, dept, isMember); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.gatekeeper.RequireCompanyAdmin(actor); err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.CreateDepartment(ctx, entities.Department{
		Name:        payload.Name,
		Description: payload.Description,
		ManagerID:   payload.ManagerID,
	})
	if err != nil {
		s.logger.Error("Ошибка при создании отдела", zap.Error(err))
		return nil, err
	}

	// Рассылка best-effort: её сбой не ломает сам запрос
	if err := s.hub.Publish(appws.TasksChannel, appws.EventDepartmentCreated, map[string]interface{}{
		"id":   dept.ID,
		"name": dept.Name,
	}); err != nil {
		s.logger.Warn("Не удалось разослать событие о новом отделе", zap.Error(err))
	}

	s.logger.Info("Отдел создан", zap.Uint64("departmentID", dept.ID))
	return dept, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) (*entities.Department, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.gatekeeper.RequireCompanyAdmin(actor); err != nil {
		return nil, err
	}

	// Проверка существования до мутации
	if _, err := s.departmentRepo.FindDepartment(ctx, id); err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.UpdateDepartment(ctx, id, payload)
	if err != nil {
		s.logger.Error("Ошибка при обновлении отдела", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uint64) error {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return err
	}
	if err := s.gatekeeper.RequireCompanyAdmin(actor); err != nil {
		return err
	}
	return s.departmentRepo.DeleteDepartment(ctx, id)
}
