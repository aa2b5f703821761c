package routes

import (
	"github.com/labstack/echo/v4"

	"company-system/internal/controllers"
)

func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController) {
	secureGroup.POST("/users/invite", ctrl.InviteUser)
	secureGroup.GET("/users", ctrl.GetCompanyUsers)
}
