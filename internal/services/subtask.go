package services

import (
	"context"

	"go.uber.org/zap"

	"company-system/internal/authz"
	"company-system/internal/dto"
	"company-system/internal/entities"
	"company-system/internal/repositories"
	"company-system/pkg/constants"
	apperrors "company-system/pkg/errors"
	appws "company-system/pkg/websocket"
)

type SubtaskServiceInterface interface {
	GetSubtasksByTask(ctx context.Context, taskID uint64) ([]entities.Subtask, error)
	FindSubtask(ctx context.Context, id uint64) (*entities.Subtask, error)
	CreateSubtask(ctx context.Context, payload dto.CreateSubtaskDTO) (*entities.Subtask, error)
	UpdateSubtask(ctx context.Context, id uint64, payload dto.UpdateSubtaskDTO) (*entities.Subtask, error)
	DeleteSubtask(ctx context.Context, id uint64) error
}

// SubtaskService. Подзадача не имеет собственного исполнителя и
// отдела: все права наследуются от родительской задачи.
type SubtaskService struct {
	subtaskRepo    repositories.SubtaskRepositoryInterface
	taskRepo       repositories.TaskRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	gatekeeper     *authz.Gatekeeper
	hub            *appws.Hub
	logger         *zap.Logger
}

func NewSubtaskService(
	subtaskRepo repositories.SubtaskRepositoryInterface,
	taskRepo repositories.TaskRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	hub *appws.Hub,
	logger *zap.Logger,
) SubtaskServiceInterface {
	return &SubtaskService{
		subtaskRepo:    subtaskRepo,
		taskRepo:       taskRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		gatekeeper:     gatekeeper,
		hub:            hub,
		logger:         logger,
	}
}

func (s *SubtaskService) GetSubtasksByTask(ctx context.Context, taskID uint64) ([]entities.Subtask, error) {
	if _, err := actorFromContext(ctx, s.userRepo); err != nil {
		return nil, err
	}
	// Несуществующая задача — 404, а не пустой список
	if _, err := s.taskRepo.FindTask(ctx, taskID); err != nil {
		return nil, err
	}
	return s.subtaskRepo.GetSubtasksByTask(ctx, taskID)
}

func (s *SubtaskService) FindSubtask(ctx context.Context, id uint64) (*entities.Subtask, error) {
	if _, err := actorFromContext(ctx, s.userRepo); err != nil {
		return nil, err
	}
	return s.subtaskRepo.FindSubtask(ctx, id)
}

func (s *SubtaskService) CreateSubtask(ctx context.Context, payload dto.CreateSubtaskDTO) (*entities.Subtask, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindTask(ctx, payload.TaskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParentTaskMutation(ctx, actor, task); err != nil {
		return nil, err
	}

	subtask, err := s.subtaskRepo.CreateSubtask(ctx, entities.Subtask{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      constants.TaskStatusToDo,
		TaskID:      payload.TaskID,
	})
	if err != nil {
		s.logger.Error("Ошибка при создании подзадачи", zap.Error(err))
		return nil, err
	}

	if err := s.hub.Publish(appws.TasksChannel, appws.EventSubtaskCreated, dto.TaskEventDTO{
		ID:     subtask.ID,
		Title:  subtask.Title,
		TaskID: subtask.TaskID,
	}); err != nil {
		s.logger.Warn("Не удалось разослать событие о новой подзадаче", zap.Error(err))
	}

	return subtask, nil
}

func (s *SubtaskService) UpdateSubtask(ctx context.Context, id uint64, payload dto.UpdateSubtaskDTO) (*entities.Subtask, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	current, err := s.subtaskRepo.FindSubtask(ctx, id)
	if err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindTask(ctx, current.TaskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParentTaskMutation(ctx, actor, task); err != nil {
		return nil, err
	}

	completedAt := completionTimestamp(current.CompletedAt, payload.Status)
	subtask, err := s.subtaskRepo.UpdateSubtask(ctx, id, payload, completedAt)
	if err != nil {
		s.logger.Error("Ошибка при обновлении подзадачи", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return subtask, nil
}

func (s *SubtaskService) DeleteSubtask(ctx context.Context, id uint64) error {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return err
	}

	subtask, err := s.subtaskRepo.FindSubtask(ctx, id)
	if err != nil {
		return err
	}
	task, err := s.taskRepo.FindTask(ctx, subtask.TaskID)
	if err != nil {
		return err
	}
	if err := s.requireParentTaskMutation(ctx, actor, task); err != nil {
		return err
	}

	return s.subtaskRepo.DeleteSubtask(ctx, id)
}

// requireParentTaskMutation — менять подзадачу может тот, кто управляет
// отделом родительской задачи, либо её назначенный исполнитель.
func (s *SubtaskService) requireParentTaskMutation(ctx context.Context, actor *entities.User, task *entities.Task) error {
	dept, err := s.departmentRepo.FindDepartment(ctx, task.DepartmentID)
	if err != nil {
		return err
	}
	if s.gatekeeper.CanManageDepartment(actor, dept) {
		return nil
	}
	if task.AssignedToID != nil && *task.AssignedToID == actor.ID {
		return nil
	}
	return apperrors.ErrForbidden
}
