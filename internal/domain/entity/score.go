package entity

import (
	"time"
)

// Score представляет одну попытку прохождения викторины.
// Попытки не ограничиваются: каждая сдача создает новую запись.
type Score struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"not null;index" json:"user_id"`
	QuizID  uint      `gorm:"not null;index" json:"quiz_id"`
	Score   int       `gorm:"not null" json:"score"`
	Total   int       `gorm:"not null" json:"total"`
	TakenAt time.Time `gorm:"autoCreateTime" json:"taken_at"`
}

// TableName определяет имя таблицы для GORM
func (Score) TableName() string {
	return "scores"
}

// Percentage возвращает результат в процентах
func (s *Score) Percentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Total) * 100
}
