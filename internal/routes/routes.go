package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"company-system/internal/authz"
	"company-system/internal/controllers"
	"company-system/internal/repositories"
	"company-system/internal/services"
	"company-system/pkg/config"
	"company-system/pkg/middleware"
	"company-system/pkg/service"
	appws "company-system/pkg/websocket"
)

type Loggers struct {
	Main *zap.Logger
	Auth *zap.Logger
	Task *zap.Logger
	Chat *zap.Logger
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	hub *appws.Hub,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	gatekeeper := authz.NewGatekeeper()
	txManager := repositories.NewTxManager(dbConn)

	// --- Репозитории ---
	userRepo := repositories.NewUserRepository(dbConn, loggers.Main)
	companyRepo := repositories.NewCompanyRepository(dbConn, loggers.Main)
	departmentRepo := repositories.NewDepartmentRepository(dbConn, loggers.Main)
	departmentUserRepo := repositories.NewDepartmentUserRepository(dbConn, loggers.Main)
	taskRepo := repositories.NewTaskRepository(dbConn, loggers.Task)
	subtaskRepo := repositories.NewSubtaskRepository(dbConn, loggers.Task)
	messageRepo := repositories.NewMessageRepository(dbConn, loggers.Chat)
	reportRepo := repositories.NewReportRepository(dbConn, loggers.Main)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- Сервисы ---
	authService := services.NewAuthService(userRepo, companyRepo, cacheRepo, txManager, jwtSvc, loggers.Auth, &cfg.Auth)
	userService := services.NewUserService(userRepo, gatekeeper, loggers.Main)
	departmentService := services.NewDepartmentService(departmentRepo, departmentUserRepo, userRepo, gatekeeper, hub, loggers.Main)
	departmentUserService := services.NewDepartmentUserService(departmentUserRepo, departmentRepo, userRepo, gatekeeper, loggers.Main)
	taskService := services.NewTaskService(taskRepo, departmentRepo, userRepo, gatekeeper, hub, loggers.Task)
	subtaskService := services.NewSubtaskService(subtaskRepo, taskRepo, departmentRepo, userRepo, gatekeeper, hub, loggers.Task)
	chatService := services.NewChatService(messageRepo, departmentRepo, departmentUserRepo, userRepo, gatekeeper, hub, loggers.Chat)
	reportService := services.NewReportService(reportRepo, userRepo, gatekeeper, loggers.Main)

	// AuthService заодно отвечает на вопрос middleware "кто это?"
	authMW := middleware.NewAuthMiddleware(jwtSvc, authService.(*services.AuthService), loggers.Auth)

	// --- Контроллеры ---
	authController := controllers.NewAuthController(authService, loggers.Auth)
	userController := controllers.NewUserController(userService, loggers.Main)
	departmentController := controllers.NewDepartmentController(departmentService, loggers.Main)
	departmentUserController := controllers.NewDepartmentUserController(departmentUserService, loggers.Main)
	taskController := controllers.NewTaskController(taskService, loggers.Task)
	subtaskController := controllers.NewSubtaskController(subtaskService, loggers.Task)
	reportController := controllers.NewReportController(reportService, loggers.Main)
	chatController := controllers.NewChatController(hub, chatService, jwtSvc, &cfg.Websocket, loggers.Chat)

	// --- Роутеры ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authController)
	runUserRouter(secureGroup, userController)
	runDepartmentRouter(secureGroup, departmentController, departmentUserController)
	runTaskRouter(secureGroup, taskController, subtaskController)
	runSubtaskRouter(secureGroup, subtaskController)
	runReportRouter(secureGroup, reportController)
	runChatRouter(e, secureGroup, chatController)

	loggers.Main.Info("InitRouter: Создание маршрутов завершено")
}
