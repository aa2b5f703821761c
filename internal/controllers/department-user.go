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

type DepartmentUserController struct {
	departmentUserService services.DepartmentUserServiceInterface
	logger                *zap.Logger
}

func NewDepartmentUserController(departmentUserService services.DepartmentUserServiceInterface, logger *zap.Logger) *DepartmentUserController {
	return &DepartmentUserController{departmentUserService: departmentUserService, logger: logger}
}

func (c *DepartmentUserController) GetDepartmentUsers(ctx echo.Context) error {
	departmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	links, err := c.departmentUserService.GetDepartmentUsers(ctx.Request().Context(), departmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, links, "Состав отдела успешно получен", http.StatusOK)
}

func (c *DepartmentUserController) CreateDepartmentUser(ctx echo.Context) error {
	var payload dto.CreateDepartmentUserDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateDepartmentUser: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	link, err := c.departmentUserService.CreateDepartmentUser(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, link, "Сотрудник успешно добавлен в отдел", http.StatusCreated)
}

func (c *DepartmentUserController) DeleteDepartmentUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.departmentUserService.DeleteDepartmentUser(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Сотрудник успешно удалён из отдела", http.StatusOK)
}
