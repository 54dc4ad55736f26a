package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// SeedDefaultUsers создает пользователей по умолчанию (admin/admin123 и
// student/student123), если их еще нет. Существующие записи не трогаются.
func SeedDefaultUsers(db *gorm.DB) error {
	defaults := []entity.User{
		{Username: "admin", Password: "admin123", Role: entity.RoleAdmin},
		{Username: "student", Password: "student123", Role: entity.RoleStudent},
	}

	for _, user := range defaults {
		var existing entity.User
		err := db.Where("username = ?", user.Username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check default user %q: %w", user.Username, err)
		}

		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create default user %q: %w", user.Username, err)
		}
		log.Printf("[Seed] Создан пользователь по умолчанию %s (роль %s)", user.Username, user.Role)
	}
	return nil
}
