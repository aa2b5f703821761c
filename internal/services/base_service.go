package services

import (
	"context"
	"errors"

	"company-system/internal/entities"
	"company-system/internal/repositories"
	apperrors "company-system/pkg/errors"
	"company-system/pkg/utils"
)

// actorFromContext загружает текущего пользователя по UserID из
// контекста запроса. Контекст заполняет auth-middleware; отсутствие
// ID означает неаутентифицированный вызов.
func actorFromContext(ctx context.Context, userRepo repositories.UserRepositoryInterface) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	actor, err := userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return actor, nil
}
