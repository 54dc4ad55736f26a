package repository

import (
	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	GetByQuizID(quizID uint) ([]entity.Question, error)
	// GetAnswerKey возвращает ключ ответов викторины: id вопроса → индекс
	// правильного варианта. Используется только путём подсчёта результата.
	GetAnswerKey(quizID uint) (map[uint]int, error)
}
