package routes

import (
	"github.com/labstack/echo/v4"

	"company-system/internal/controllers"
)

func runTaskRouter(secureGroup *echo.Group, ctrl *controllers.TaskController, subtaskCtrl *controllers.SubtaskController) {
	secureGroup.GET("/tasks", ctrl.GetTasks)
	secureGroup.GET("/tasks/my", ctrl.GetMyTasks)
	secureGroup.GET("/tasks/:id", ctrl.FindTask)
	secureGroup.POST("/tasks", ctrl.CreateTask)
	secureGroup.PUT("/tasks/:id", ctrl.UpdateTask)
	secureGroup.DELETE("/tasks/:id", ctrl.DeleteTask)

	secureGroup.GET("/tasks/:id/subtasks", subtaskCtrl.GetSubtasksByTask)
}
