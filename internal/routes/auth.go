package routes

import (
	"github.com/labstack/echo/v4"

	"company-system/internal/controllers"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, ctrl *controllers.AuthController) {
	api.POST("/auth/register", ctrl.Register)
	api.POST("/auth/login", ctrl.Login)
	api.POST("/auth/refresh", ctrl.RefreshToken)

	secureGroup.GET("/auth/me", ctrl.Me)
}
