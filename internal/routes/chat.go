package routes

import (
	"github.com/labstack/echo/v4"

	"company-system/internal/controllers"
)

// runChatRouter: websocket-эндпоинты висят на корне (аутентификация по
// query-токену внутри контроллера), история чатов — на защищённом API.
func runChatRouter(e *echo.Echo, secureGroup *echo.Group, ctrl *controllers.ChatController) {
	e.GET("/ws/tasks", ctrl.ServeTasksWs)
	e.GET("/ws/chat/private/:room", ctrl.ServePrivateChatWs)
	e.GET("/ws/chat/department/:id", ctrl.ServeDepartmentChatWs)

	secureGroup.GET("/chat/private/:room/messages", ctrl.GetPrivateHistory)
	secureGroup.GET("/chat/department/:id/messages", ctrl.GetDepartmentHistory)
}
