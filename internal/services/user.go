package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"company-system/internal/authz"
	"company-system/internal/dto"
	"company-system/internal/entities"
	"company-system/internal/repositories"
	"company-system/pkg/constants"
	"company-system/pkg/types"
)

type UserServiceInterface interface {
	InviteUser(ctx context.Context, payload dto.InviteUserDTO) (*entities.User, error)
	GetCompanyUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
}

type UserService struct {
	userRepo   repositories.UserRepositoryInterface
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:   userRepo,
		gatekeeper: gatekeeper,
		logger:     logger,
	}
}

// InviteUser — администратор приглашает сотрудника в СВОЮ компанию.
func (s *UserService) InviteUser(ctx context.Context, payload dto.InviteUserDTO) (*entities.User, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.gatekeeper.RequireCompanyAdmin(actor); err != nil {
		return nil, err
	}

	role := payload.Role
	if role == "" {
		role = constants.RoleEmployee
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, nil, entities.User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Password:  string(hashedPassword),
		Role:      role,
		CompanyID: actor.CompanyID,
	})
	if err != nil {
		s.logger.Warn("Приглашение сотрудника не удалось", zap.String("email", payload.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Сотрудник приглашён",
		zap.Uint64("userID", user.ID),
		zap.Uint64("invitedBy", actor.ID),
	)
	return user, nil
}

// GetCompanyUsers возвращает пользователей компании вызывающего админа.
func (s *UserService) GetCompanyUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, 0, err
	}
	if err := s.gatekeeper.RequireCompanyAdmin(actor); err != nil {
		return nil, 0, err
	}
	return s.userRepo.GetCompanyUsers(ctx, *actor.CompanyID, filter)
}
