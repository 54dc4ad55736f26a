package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
	"github.com/yourusername/quizgen-api/pkg/auth"
)

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func newTestAuthService(t *testing.T, userRepo *MockUserRepository) *AuthService {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)

	svc, err := NewAuthService(userRepo, jwtService)
	require.NoError(t, err)
	return svc
}

func hashedUser(t *testing.T, username, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &entity.User{ID: 1, Username: username, Password: string(hash), Role: role}
}

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(t, userRepo)

	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	// Act
	user, err := svc.Register("newstudent", "password123", entity.RoleStudent)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "newstudent", user.Username)
	assert.Equal(t, entity.RoleStudent, user.Role)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(t, userRepo)

	// Act
	user, err := svc.Register("someone", "password123", "superuser")

	// Assert: произвольные роли не принимаются
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, user)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(t, userRepo)

	// Act & Assert
	_, err := svc.Register("", "password123", entity.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Register("someone", "", entity.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	// Arrange: репозиторий сигнализирует о занятом имени
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(t, userRepo)

	userRepo.On("Create", mock.Anything).Return(apperrors.ErrConflict)

	// Act
	user, err := svc.Register("taken", "password123", entity.RoleAdmin)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Nil(t, user)
}

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(t, userRepo)

	userRepo.On("GetByUsername", "admin").Return(hashedUser(t, "admin", "admin123", entity.RoleAdmin), nil)

	// Act
	token, user, err := svc.Login("admin", "admin123")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, entity.RoleAdmin, user.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(t, userRepo)

	userRepo.On("GetByUsername", "admin").Return(hashedUser(t, "admin", "admin123", entity.RoleAdmin), nil)

	// Act
	token, user, err := svc.Login("admin", "wrong-password")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(t, userRepo)

	userRepo.On("GetByUsername", "ghost").Return(nil, apperrors.ErrNotFound)

	// Act
	token, user, err := svc.Login("ghost", "whatever")

	// Assert: неизвестное имя отличимо от неверного пароля
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, token)
	assert.Nil(t, user)
}
