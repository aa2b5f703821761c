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
	"company-system/pkg/types"
	appws "company-system/pkg/websocket"
)

type TaskServiceInterface interface {
	GetTasks(ctx context.Context, filter types.Filter) ([]entities.Task, uint64, error)
	GetMyTasks(ctx context.Context) ([]entities.Task, error)
	FindTask(ctx context.Context, id uint64) (*entities.Task, error)
	CreateTask(ctx context.Context, payload dto.CreateTaskDTO) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uint64, payload dto.UpdateTaskDTO) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
}

type TaskService struct {
	taskRepo       repositories.TaskRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	gatekeeper     *authz.Gatekeeper
	hub            *appws.Hub
	logger         *zap.Logger
}

func NewTaskService(
	taskRepo repositories.TaskRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	hub *appws.Hub,
	logger *zap.Logger,
) TaskServiceInterface {
	return &TaskService{
		taskRepo:       taskRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		gatekeeper:     gatekeeper,
		hub:            hub,
		logger:         logger,
	}
}

func (s *TaskService) GetTasks(ctx context.Context, filter types.Filter) ([]entities.Task, uint64, error) {
	if _, err := actorFromContext(ctx, s.userRepo); err != nil {
		return nil, 0, err
	}
	return s.taskRepo.GetTasks(ctx, filter)
}

// GetMyTasks возвращает задачи, назначенные на вызывающего.
func (s *TaskService) GetMyTasks(ctx context.Context) ([]entities.Task, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.GetTasksByAssignee(ctx, actor.ID)
}

func (s *TaskService) FindTask(ctx context.Context, id uint64) (*entities.Task, error) {
	if _, err := actorFromContext(ctx, s.userRepo); err != nil {
		return nil, err
	}
	return s.taskRepo.FindTask(ctx, id)
}

// CreateTask создаёт задачу в отделе. Право — по отделу задачи: админ
// компании либо менеджер этого отдела. Новая задача всегда стартует
// в статусе to_do, что бы ни прислал клиент.
func (s *TaskService) CreateTask(ctx context.Context, payload dto.CreateTaskDTO) (*entities.Task, error) {
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

	task, err := s.taskRepo.CreateTask(ctx, entities.Task{
		Title:        payload.Title,
		Description:  payload.Description,
		Status:       constants.TaskStatusToDo,
		AssignedToID: payload.AssignedToID,
		DepartmentID: payload.DepartmentID,
		Deadline:     payload.Deadline,
	})
	if err != nil {
		s.logger.Error("Ошибка при создании задачи", zap.Error(err))
		return nil, err
	}

	if err := s.hub.Publish(appws.TasksChannel, appws.EventTaskCreated, dto.TaskEventDTO{
		ID:           task.ID,
		Title:        task.Title,
		DepartmentID: task.DepartmentID,
	}); err != nil {
		s.logger.Warn("Не удалось разослать событие о новой задаче", zap.Error(err))
	}

	s.logger.Info("Задача создана",
		zap.Uint64("taskID", task.ID),
		zap.Uint64("departmentID", task.DepartmentID),
	)
	return task, nil
}

// UpdateTask — частичное обновление. Отметка о выполнении ставится
// один раз, при первом переходе в done, и дальше не трогается.
func (s *TaskService) UpdateTask(ctx context.Context, id uint64, payload dto.UpdateTaskDTO) (*entities.Task, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	current, err := s.taskRepo.FindTask(ctx, id)
	if err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.FindDepartment(ctx, current.DepartmentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTaskMutation(actor, dept, current); err != nil {
		return nil, err
	}

	completedAt := completionTimestamp(current.CompletedAt, payload.Status)
	task, err := s.taskRepo.UpdateTask(ctx, id, payload, completedAt)
	if err != nil {
		s.logger.Error("Ошибка при обновлении задачи", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// DeleteTask удаляет задачу вместе с подзадачами. Право — как у
// создания: админ либо менеджер отдела задачи.
func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return err
	}

	task, err := s.taskRepo.FindTask(ctx, id)
	if err != nil {
		return err
	}
	dept, err := s.departmentRepo.FindDepartment(ctx, task.DepartmentID)
	if err != nil {
		return err
	}
	if err := s.gatekeeper.RequireDepartmentManagement(actor, dept); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Задача удалена", zap.Uint64("taskID", id))
	return nil
}

// requireTaskMutation — обновлять задачу может тот, кто управляет её
// отделом, либо назначенный исполнитель.
func (s *TaskService) requireTaskMutation(actor *entities.User, dept *entities.Department, task *entities.Task) error {
	if s.gatekeeper.CanManageDepartment(actor, dept) {
		return nil
	}
	if task.AssignedToID != nil && *task.AssignedToID == actor.ID {
		return nil
	}
	return apperrors.ErrForbidden
}
