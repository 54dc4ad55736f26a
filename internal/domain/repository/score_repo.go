package repository

import (
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// UserScore представляет попытку пользователя вместе с названием викторины
type UserScore struct {
	QuizID  uint      `json:"quiz_id"`
	Title   string    `json:"title"`
	Score   int       `json:"score"`
	Total   int       `json:"total"`
	TakenAt time.Time `json:"taken_at"`
}

// QuizAttempt представляет попытку по викторине вместе с именем студента
type QuizAttempt struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	Score    int       `json:"score"`
	Total    int       `json:"total"`
	TakenAt  time.Time `json:"taken_at"`
}

// ScoreRepository определяет методы для работы с результатами попыток
type ScoreRepository interface {
	Create(score *entity.Score) error
	// ListByUser возвращает попытки пользователя, новые первыми.
	ListByUser(userID uint) ([]UserScore, error)
	// ListByQuiz возвращает все попытки по викторине, новые первыми.
	ListByQuiz(quizID uint) ([]QuizAttempt, error)
}
