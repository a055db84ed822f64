package user

import (
	"Ginraidee/domain"
	"Ginraidee/entities"
	"Ginraidee/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		RefreshToken(ctx context.Context, userID string) (domain.AuthResponse, error)
		EnsureGuest(ctx context.Context, guestID string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		logger         *zap.Logger
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, logger *zap.Logger) UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		logger:         logger,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return domain.AuthResponse{}, domain.ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	lang := domain.LanguageThai
	if req.Language != "" {
		lang = domain.ParseLanguage(req.Language)
	}
	user := &entities.User{
		Email:    email,
		Password: string(hashed),
		Name:     req.Name,
		Language: string(lang),
		Role:     domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.AuthResponse{}, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	return s.issue(user)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *userService) RefreshToken(ctx context.Context, userID string) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrUserNotFound
		}
		return domain.AuthResponse{}, err
	}
	return s.issue(user)
}

// EnsureGuest creates the shared guest owner if it does not exist yet.
func (s *userService) EnsureGuest(ctx context.Context, guestID string) error {
	id, err := uuid.Parse(guestID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.userRepository.EnsureUser(ctx, &entities.User{
		ID:       id,
		Email:    "guest@ginraidee.local",
		Password: "!",
		Name:     "Guest",
		Language: string(domain.LanguageThai),
		Role:     domain.RoleGuest,
	})
}

func (s *userService) issue(user *entities.User) (domain.AuthResponse, error) {
	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	return domain.AuthResponse{
		Token: token,
		User: domain.UserResponse{
			ID:        user.ID.String(),
			Email:     user.Email,
			Name:      user.Name,
			Language:  user.Language,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
