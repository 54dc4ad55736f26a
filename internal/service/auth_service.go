package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
	"github.com/yourusername/quizgen-api/pkg/auth"
)

// AuthService предоставляет методы регистрации и входа
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}, nil
}

// Register регистрирует нового пользователя.
// Роль обязана входить в допустимый набор; занятое имя дает ErrConflict.
func (s *AuthService) Register(username, password, role string) (*entity.User, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" || role == "" {
		return nil, fmt.Errorf("%w: username, password and role are required", apperrors.ErrValidation)
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: role must be %q or %q", apperrors.ErrValidation, entity.RoleStudent, entity.RoleAdmin)
	}

	user := &entity.User{
		Username: username,
		Password: password, // хешируется хуком BeforeSave
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login проверяет учетные данные и выдает JWT.
// Неизвестное имя дает ErrNotFound, неверный пароль - ErrUnauthorized.
func (s *AuthService) Login(username, password string) (string, *entity.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		return "", nil, err
	}

	if !user.CheckPassword(password) {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}
