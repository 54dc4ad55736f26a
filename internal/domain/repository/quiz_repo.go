package repository

import (
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// QuizSummary представляет строку административного списка викторин
// с агрегатами по вопросам и попыткам.
type QuizSummary struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	CreatedBy     string    `json:"created_by"` // имя автора, не id
	QuestionCount int64     `json:"question_count"`
	AttemptCount  int64     `json:"attempt_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	// CreateWithQuestions сохраняет викторину и все её вопросы в одной
	// транзакции: либо записывается всё, либо ничего. Вставка викторины
	// строго предшествует вставке вопросов (вопросам нужен её id).
	CreateWithQuestions(quiz *entity.Quiz, questions []entity.Question) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	// List возвращает викторины, отсортированные по дате создания;
	// search фильтрует по подстроке названия без учёта регистра.
	List(search string) ([]entity.Quiz, error)
	// ListSummaries возвращает административный список с количеством
	// вопросов и попыток по каждой викторине.
	ListSummaries() ([]QuizSummary, error)
	Delete(id uint) error
}
