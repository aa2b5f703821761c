package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"company-system/internal/services"
	"company-system/pkg/config"
	"company-system/pkg/service"
	"company-system/pkg/utils"
	appws "company-system/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatController обслуживает websocket-каналы и историю чатов.
// Браузерный WebSocket API не умеет выставлять заголовки, поэтому
// токен для апгрейда передаётся query-параметром.
type ChatController struct {
	hub         *appws.Hub
	chatService services.ChatServiceInterface
	jwtService  service.JWTService
	wsCfg       *config.WebsocketConfig
	logger      *zap.Logger
}

func NewChatController(
	hub *appws.Hub,
	chatService services.ChatServiceInterface,
	jwtService service.JWTService,
	wsCfg *config.WebsocketConfig,
	logger *zap.Logger,
) *ChatController {
	return &ChatController{
		hub:         hub,
		chatService: chatService,
		jwtService:  jwtService,
		wsCfg:       wsCfg,
		logger:      logger,
	}
}

// authenticateWs проверяет токен из query и возвращает ID пользователя.
func (c *ChatController) authenticateWs(ctx echo.Context) (uint64, error) {
	tokenString := ctx.QueryParam("token")
	if tokenString == "" {
		return 0, ctx.String(http.StatusUnauthorized, "Missing token")
	}

	claims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil || claims.IsRefreshToken {
		return 0, ctx.String(http.StatusUnauthorized, "Invalid token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return 0, ctx.String(http.StatusUnauthorized, "Invalid token")
	}
	return userID, nil
}

func (c *ChatController) upgrade(ctx echo.Context, userID uint64, channel string) (*appws.Client, error) {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось выполнить апгрейд соединения", zap.Error(err))
		return nil, err
	}

	client := appws.NewClient(c.hub, conn, userID, c.wsCfg.IdleTimeout)
	c.hub.Subscribe(channel, client)
	go client.WritePump()

	c.logger.Info("WebSocket: клиент подключён",
		zap.Uint64("userID", userID),
		zap.String("channel", channel),
	)
	return client, nil
}

// ServeTasksWs — глобальный канал уведомлений о задачах. Входящие
// кадры в этом канале игнорируются: он только на чтение.
func (c *ChatController) ServeTasksWs(ctx echo.Context) error {
	userID, err := c.authenticateWs(ctx)
	if err != nil {
		return err
	}

	client, err := c.upgrade(ctx, userID, appws.TasksChannel)
	if err != nil {
		return err
	}
	client.ReadPump(nil)
	return nil
}

// ServePrivateChatWs — приватная комната; имя комнаты — произвольная
// строка, доступ есть у любого авторизованного, знающего имя.
func (c *ChatController) ServePrivateChatWs(ctx echo.Context) error {
	userID, err := c.authenticateWs(ctx)
	if err != nil {
		return err
	}
	room := ctx.Param("room")

	client, err := c.upgrade(ctx, userID, appws.PrivateChannel(room))
	if err != nil {
		return err
	}
	client.ReadPump(func(text string) {
		if _, err := c.chatService.PostPrivateMessage(context.Background(), room, text); err != nil {
			c.logger.Error("Чат: не удалось обработать сообщение",
				zap.String("room", room),
				zap.Error(err),
			)
		}
	})
	return nil
}

// ServeDepartmentChatWs — чат отдела; до апгрейда проверяется право
// на вход по роли и членству в отделе.
func (c *ChatController) ServeDepartmentChatWs(ctx echo.Context) error {
	userID, err := c.authenticateWs(ctx)
	if err != nil {
		return err
	}
	departmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	allowed, err := c.chatService.CanJoinDepartmentChat(ctx.Request().Context(), userID, departmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if !allowed {
		return ctx.String(http.StatusForbidden, "Forbidden")
	}

	client, err := c.upgrade(ctx, userID, appws.DepartmentChannel(departmentID))
	if err != nil {
		return err
	}
	client.ReadPump(func(text string) {
		if _, err := c.chatService.PostDepartmentMessage(context.Background(), departmentID, text); err != nil {
			c.logger.Error("Чат отдела: не удалось обработать сообщение",
				zap.Uint64("departmentID", departmentID),
				zap.Error(err),
			)
		}
	})
	return nil
}

// GetPrivateHistory — последние сообщения приватной комнаты.
func (c *ChatController) GetPrivateHistory(ctx echo.Context) error {
	room := ctx.Param("room")

	messages, err := c.chatService.GetPrivateHistory(ctx.Request().Context(), room)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, messages, "История чата успешно получена", http.StatusOK)
}

// GetDepartmentHistory — последние сообщения чата отдела.
func (c *ChatController) GetDepartmentHistory(ctx echo.Context) error {
	departmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	messages, err := c.chatService.GetDepartmentHistory(ctx.Request().Context(), departmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, messages, "История чата успешно получена", http.StatusOK)
}
