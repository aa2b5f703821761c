package constants

// Роли пользователей в системе
const (
	RoleCompanyAdmin      = "company_admin"
	RoleDepartmentManager = "department_manager"
	RoleEmployee          = "employee"
)

// Статусы задач и подзадач
const (
	TaskStatusToDo  = "to_do"
	TaskStatusDoing = "doing"
	TaskStatusDone  = "done"
)

// Типы чатов
const (
	ChatTypePrivate    = "private"
	ChatTypeDepartment = "department"
)

// IsValidTaskStatus проверяет, что статус входит в допустимый набор.
func IsValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusToDo, TaskStatusDoing, TaskStatusDone:
		return true
	}
	return false
}
