package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"company-system/internal/dto"
	"company-system/internal/entities"
	"company-system/internal/repositories"
	"company-system/pkg/config"
	"company-system/pkg/constants"
	apperrors "company-system/pkg/errors"
	"company-system/pkg/service"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenPairDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error)
	Me(ctx context.Context) (*entities.User, error)
}

type AuthService struct {
	userRepo    repositories.UserRepositoryInterface
	companyRepo repositories.CompanyRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	txManager   repositories.TxManagerInterface
	jwtService  service.JWTService
	logger      *zap.Logger
	cfg         *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	companyRepo repositories.CompanyRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		cacheRepo:   cacheRepo,
		txManager:   txManager,
		jwtService:  jwtService,
		logger:      logger,
		cfg:         cfg,
	}
}

// Register создаёт компанию вместе с её администратором одной
// транзакцией: админ, компания, привязка админа к компании. Любой
// конфликт уникальности (email, телефон, имя компании) откатывает всё.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenPairDTO, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	var admin *entities.User
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		admin, err = s.userRepo.CreateUser(ctx, tx, entities.User{
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			Phone:     payload.Phone,
			Password:  string(hashedPassword),
			Role:      constants.RoleCompanyAdmin,
		})
		if err != nil {
			return err
		}

		company, err := s.companyRepo.CreateCompany(ctx, tx, entities.Company{
			Name:    payload.Company.Name,
			Address: payload.Company.Address,
			Phone:   payload.Company.Phone,
		})
		if err != nil {
			return err
		}

		return s.userRepo.AssignCompany(ctx, tx, admin.ID, company.ID)
	})
	if err != nil {
		s.logger.Warn("Регистрация компании не удалась", zap.String("email", payload.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Компания зарегистрирована", zap.Uint64("adminID", admin.ID))
	return s.issueTokens(admin.ID)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	lockoutKey := fmt.Sprintf("login_lockout:%s", payload.Email)
	attemptsKey := fmt.Sprintf("login_attempts:%s", payload.Email)

	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		s.logger.Warn("Вход заблокирован из-за количества попыток", zap.String("email", payload.Email))
		return nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, attemptsKey, lockoutKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		s.registerFailedAttempt(ctx, attemptsKey, lockoutKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	// Успешный вход сбрасывает счётчик попыток
	_ = s.cacheRepo.Del(ctx, attemptsKey)

	s.logger.Info("Пользователь вошёл в систему", zap.Uint64("userID", user.ID))
	return s.issueTokens(user.ID)
}

// registerFailedAttempt увеличивает счётчик неудачных попыток и при
// превышении лимита ставит блокировку. Ошибки кэша вход не ломают.
func (s *AuthService) registerFailedAttempt(ctx context.Context, attemptsKey, lockoutKey string) {
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Не удалось обновить счётчик попыток входа", zap.Error(err))
		return
	}
	_ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration)
	}
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	// Пользователь мог быть удалён после выдачи токена
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return s.issueTokens(userID)
}

func (s *AuthService) Me(ctx context.Context) (*entities.User, error) {
	return actorFromContext(ctx, s.userRepo)
}

// ResolveRole реализует middleware.UserResolver.
func (s *AuthService) ResolveRole(ctx context.Context, userID uint64) (string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *AuthService) issueTokens(userID uint64) (*dto.TokenPairDTO, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(userID)
	if err != nil {
		s.logger.Error("Не удалось выдать токены", zap.String("userID", strconv.FormatUint(userID, 10)), zap.Error(err))
		return nil, err
	}
	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
	}, nil
}
