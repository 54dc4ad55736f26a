package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByQuizID возвращает вопросы викторины в порядке вставки
func (r *QuestionRepo) GetByQuizID(quizID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("quiz_id = ?", quizID).Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetAnswerKey возвращает ключ ответов викторины: id вопроса → правильный индекс
func (r *QuestionRepo) GetAnswerKey(quizID uint) (map[uint]int, error) {
	var rows []struct {
		ID            uint
		CorrectOption int
	}

	err := r.db.Model(&entity.Question{}).
		Select("id, correct_option").
		Where("quiz_id = ?", quizID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	key := make(map[uint]int, len(rows))
	for _, row := range rows {
		key[row.ID] = row.CorrectOption
	}
	return key, nil
}
