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

type SubtaskController struct {
	subtaskService services.SubtaskServiceInterface
	logger         *zap.Logger
}

func NewSubtaskController(subtaskService services.SubtaskServiceInterface, logger *zap.Logger) *SubtaskController {
	return &SubtaskController{subtaskService: subtaskService, logger: logger}
}

// GetSubtasksByTask — подзадачи конкретной задачи.
func (c *SubtaskController) GetSubtasksByTask(ctx echo.Context) error {
	taskID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	subtasks, err := c.subtaskService.GetSubtasksByTask(ctx.Request().Context(), taskID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, subtasks, "Список подзадач успешно получен", http.StatusOK)
}

func (c *SubtaskController) FindSubtask(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	subtask, err := c.subtaskService.FindSubtask(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, subtask, "Подзадача успешно найдена", http.StatusOK)
}

func (c *SubtaskController) CreateSubtask(ctx echo.Context) error {
	var payload dto.CreateSubtaskDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateSubtask: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных подзадачи"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	subtask, err := c.subtaskService.CreateSubtask(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, subtask, "Подзадача успешно создана", http.StatusCreated)
}

func (c *SubtaskController) UpdateSubtask(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateSubtaskDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateSubtask: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных подзадачи"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	subtask, err := c.subtaskService.UpdateSubtask(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, subtask, "Подзадача успешно обновлена", http.StatusOK)
}

func (c *SubtaskController) DeleteSubtask(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.subtaskService.DeleteSubtask(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Подзадача успешно удалена", http.StatusOK)
}
