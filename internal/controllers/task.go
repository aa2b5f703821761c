package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"company-system/internal/dto"
	"company-system/internal/services"
	apperrors "company-system/pkg/errors"
	"company-system/pkg/utils"
)

type TaskController struct {
	taskService services.TaskServiceInterface
	logger      *zap.Logger
}

func NewTaskController(taskService services.TaskServiceInterface, logger *zap.Logger) *TaskController {
	return &TaskController{taskService: taskService, logger: logger}
}

func (c *TaskController) GetTasks(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	tasks, total, err := c.taskService.GetTasks(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, tasks, "Список задач успешно получен", http.StatusOK, total)
}

// GetMyTasks — задачи, назначенные на текущего пользователя.
func (c *TaskController) GetMyTasks(ctx echo.Context) error {
	tasks, err := c.taskService.GetMyTasks(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, tasks, "Список моих задач успешно получен", http.StatusOK)
}

func (c *TaskController) FindTask(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	task, err := c.taskService.FindTask(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, task, "Задача успешно найдена", http.StatusOK)
}

func (c *TaskController) CreateTask(ctx echo.Context) error {
	var payload dto.CreateTaskDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateTask: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных задачи"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	task, err := c.taskService.CreateTask(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, task, "Задача успешно создана", http.StatusCreated)
}

func (c *TaskController) UpdateTask(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateTaskDTO
	sent, err := utils.BindPatch(ctx, &payload)
	if err != nil {
		c.logger.Error("UpdateTask: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных задачи"), c.logger)
	}
	_, payload.AssignedToSent = sent["assigned_to_id"]
	_, payload.DeadlineSent = sent["deadline"]
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	task, err := c.taskService.UpdateTask(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, task, "Задача успешно обновлена", http.StatusOK)
}

func (c *TaskController) DeleteTask(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.taskService.DeleteTask(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Задача успешно удалена", http.StatusOK)
}
