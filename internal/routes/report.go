package routes

import (
	"github.com/labstack/echo/v4"

	"company-system/internal/controllers"
)

func runReportRouter(secureGroup *echo.Group, ctrl *controllers.ReportController) {
	secureGroup.GET("/reports/tasks", ctrl.GetTaskReport)
}
