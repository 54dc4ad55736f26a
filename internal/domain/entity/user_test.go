package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mockTx создаёт минимальный мок для передачи в BeforeSave
// В реальности BeforeSave не использует tx напрямую, но сигнатура требует его
var mockTx *gorm.DB = nil

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange: создаём пользователя с открытым паролем
	plainPassword := "mySecretPassword123"
	user := &User{
		Username: "testuser",
		Password: plainPassword,
		Role:     RoleStudent,
	}

	// Act: вызываем BeforeSave
	err := user.BeforeSave(mockTx)

	// Assert: пароль должен быть хеширован
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.NotEqual(t, plainPassword, user.Password, "Пароль должен быть изменён после хеширования")
	assert.True(t, len(user.Password) > 50, "Хеш bcrypt должен быть длиннее 50 символов")

	// Проверяем, что пароль действительно bcrypt-хеш
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword))
	assert.NoError(t, err, "Хеш должен соответствовать исходному паролю")
}

func TestUser_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	// Arrange: создаём пользователя с уже хешированным паролем
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("alreadyHashed"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		Username: "testuser",
		Password: string(hashedPassword),
		Role:     RoleStudent,
	}
	originalHash := user.Password

	// Act: вызываем BeforeSave
	err = user.BeforeSave(mockTx)

	// Assert: пароль не должен измениться (нет двойного хеширования)
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.Equal(t, originalHash, user.Password, "Уже хешированный пароль не должен изменяться")
}

func TestUser_CheckPassword(t *testing.T) {
	// Arrange: создаём пользователя и хешируем его пароль
	correctPassword := "correctPassword123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(correctPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		Username: "testuser",
		Password: string(hashedPassword),
	}

	// Act & Assert
	assert.True(t, user.CheckPassword(correctPassword), "CheckPassword должен вернуть true для правильного пароля")
	assert.False(t, user.CheckPassword("wrongPassword456"), "CheckPassword должен вернуть false для неправильного пароля")
	assert.False(t, user.CheckPassword(""), "CheckPassword должен вернуть false для пустого пароля")
}

func TestUser_IsAdmin(t *testing.T) {
	// Arrange & Act & Assert
	admin := &User{Role: RoleAdmin}
	student := &User{Role: RoleStudent}

	assert.True(t, admin.IsAdmin())
	assert.False(t, student.IsAdmin())
}

func TestIsValidRole(t *testing.T) {
	// Act & Assert: принимаются только две известные роли
	assert.True(t, IsValidRole(RoleStudent))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("superuser"))
	assert.False(t, IsValidRole(""))
	assert.False(t, IsValidRole("Admin"))
}

func TestUser_TableName(t *testing.T) {
	// Arrange
	user := User{}

	// Act & Assert
	assert.Equal(t, "users", user.TableName(), "TableName должен возвращать 'users'")
}
