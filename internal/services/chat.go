package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"company-system/internal/authz"
	"company-system/internal/dto"
	"company-system/internal/entities"
	"company-system/internal/repositories"
	"company-system/pkg/constants"
	apperrors "company-system/pkg/errors"
	appws "company-system/pkg/websocket"
)

const roomHistoryLimit = 100

type ChatServiceInterface interface {
	CanJoinDepartmentChat(ctx context.Context, userID, departmentID uint64) (bool, error)
	PostPrivateMessage(ctx context.Context, roomID, content string) (*entities.Message, error)
	PostDepartmentMessage(ctx context.Context, departmentID uint64, content string) (*entities.Message, error)
	GetPrivateHistory(ctx context.Context, roomID string) ([]entities.Message, error)
	GetDepartmentHistory(ctx context.Context, departmentID uint64) ([]entities.Message, error)
}

// ChatService сохраняет сообщения и раздаёт их подписчикам каналов.
// Порядок строгий: сначала запись в БД, потом рассылка. Сбой рассылки
// сообщение не теряет — оно уже в истории.
type ChatService struct {
	messageRepo        repositories.MessageRepositoryInterface
	departmentRepo     repositories.DepartmentRepositoryInterface
	departmentUserRepo repositories.DepartmentUserRepositoryInterface
	userRepo           repositories.UserRepositoryInterface
	gatekeeper         *authz.Gatekeeper
	hub                *appws.Hub
	logger             *zap.Logger
}

func NewChatService(
	messageRepo repositories.MessageRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	departmentUserRepo repositories.DepartmentUserRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	hub *appws.Hub,
	logger *zap.Logger,
) ChatServiceInterface {
	return &ChatService{
		messageRepo:        messageRepo,
		departmentRepo:     departmentRepo,
		departmentUserRepo: departmentUserRepo,
		userRepo:           userRepo,
		gatekeeper:         gatekeeper,
		hub:                hub,
		logger:             logger,
	}
}

// CanJoinDepartmentChat — в чат отдела пускают админа компании,
// менеджера отдела и его участников.
func (s *ChatService) CanJoinDepartmentChat(ctx context.Context, userID, departmentID uint64) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	dept, err := s.departmentRepo.FindDepartment(ctx, departmentID)
	if err != nil {
		return false, err
	}
	isMember, err := s.departmentUserRepo.IsMember(ctx, userID, departmentID)
	if err != nil {
		return false, err
	}
	return s.gatekeeper.CanViewDepartment(user, dept, isMember), nil
}

func (s *ChatService) PostPrivateMessage(ctx context.Context, roomID, content string) (*entities.Message, error) {
	return s.post(ctx, constants.ChatTypePrivate, roomID, appws.PrivateChannel(roomID), content)
}

func (s *ChatService) PostDepartmentMessage(ctx context.Context, departmentID uint64, content string) (*entities.Message, error) {
	room := fmt.Sprintf("%d", departmentID)
	return s.post(ctx, constants.ChatTypeDepartment, room, appws.DepartmentChannel(departmentID), content)
}

func (s *ChatService) post(ctx context.Context, chatType, room, channel, content string) (*entities.Message, error) {
	message, err := s.messageRepo.CreateMessage(ctx, entities.Message{
		Content:  content,
		ChatType: chatType,
		Room:     room,
	})
	if err != nil {
		s.logger.Error("Не удалось сохранить сообщение чата",
			zap.String("room", room),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.hub.Publish(channel, appws.EventChatMessage, dto.ChatMessageDTO{
		ID:       message.ID,
		Content:  message.Content,
		ChatType: message.ChatType,
		Room:     message.Room,
	}); err != nil {
		s.logger.Warn("Сообщение сохранено, но рассылка не удалась",
			zap.Uint64("messageID", message.ID),
			zap.Error(err),
		)
	}
	return message, nil
}

func (s *ChatService) GetPrivateHistory(ctx context.Context, roomID string) ([]entities.Message, error) {
	if _, err := actorFromContext(ctx, s.userRepo); err != nil {
		return nil, err
	}
	return s.messageRepo.GetRoomMessages(ctx, constants.ChatTypePrivate, roomID, roomHistoryLimit)
}

func (s *ChatService) GetDepartmentHistory(ctx context.Context, departmentID uint64) ([]entities.Message, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	allowed, err := s.CanJoinDepartmentChat(ctx, actor.ID, departmentID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrForbidden
	}
	return s.messageRepo.GetRoomMessages(ctx, constants.ChatTypeDepartment, fmt.Sprintf("%d", departmentID), roomHistoryLimit)
}
