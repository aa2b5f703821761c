package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"company-system/pkg/contextkeys"
	apperrors "company-system/pkg/errors"
	"company-system/pkg/service"
	"company-system/pkg/utils"
)

// UserResolver проверяет, что ID из токена указывает на существующего
// пользователя, и возвращает его роль.
type UserResolver interface {
	ResolveRole(ctx context.Context, userID uint64) (string, error)
}

type AuthMiddleware struct {
	jwtService   service.JWTService
	userResolver UserResolver
	logger       *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, userResolver UserResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtSvc,
		userResolver: userResolver,
		logger:       logger,
	}
}

// Auth — основная функция middleware: извлекает bearer-токен, валидирует
// его и кладёт UserID с ролью в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		// Refresh-токен не даёт доступа к API
		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		userID, err := claims.UserID()
		if err != nil {
			m.logger.Warn("AuthMiddleware: Некорректный subject в токене", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		role, err := m.userResolver.ResolveRole(c.Request().Context(), userID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Пользователь из токена не найден", zap.Uint64("userID", userID))
			return utils.ErrorResponse(c, apperrors.ErrUserNotFound, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
