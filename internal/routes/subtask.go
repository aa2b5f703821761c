package routes

import (
	"github.com/labstack/echo/v4"

	"company-system/internal/controllers"
)

func runSubtaskRouter(secureGroup *echo.Group, ctrl *controllers.SubtaskController) {
	secureGroup.GET("/subtasks/:id", ctrl.FindSubtask)
	secureGroup.POST("/subtasks", ctrl.CreateSubtask)
	secureGroup.PUT("/subtasks/:id", ctrl.UpdateSubtask)
	secureGroup.DELETE("/subtasks/:id", ctrl.DeleteSubtask)
}
