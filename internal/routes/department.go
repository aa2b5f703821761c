package routes

import (
	"github.com/labstack/echo/v4"

	"company-system/internal/controllers"
)

func runDepartmentRouter(secureGroup *echo.Group, ctrl *controllers.DepartmentController, duCtrl *controllers.DepartmentUserController) {
	secureGroup.GET("/departments", ctrl.GetDepartments)
	secureGroup.GET("/departments/:id", ctrl.FindDepartment)
	secureGroup.POST("/departments", ctrl.CreateDepartment)
	secureGroup.PUT("/departments/:id", ctrl.UpdateDepartment)
	secureGroup.DELETE("/departments/:id", ctrl.DeleteDepartment)

	// Состав отдела
	secureGroup.GET("/departments/:id/users", duCtrl.GetDepartmentUsers)
	secureGroup.POST("/department-users", duCtrl.CreateDepartmentUser)
	secureGroup.DELETE("/department-users/:id", duCtrl.DeleteDepartmentUser)
}
