package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// CreateWithQuestions сохраняет викторину и её вопросы в одной транзакции.
// Сначала вставляется викторина (чтобы получить id), затем пакетом вопросы.
// Любая ошибка откатывает транзакцию целиком: частичный набор вопросов
// никогда не становится видимым читателям.
func (r *QuizRepo) CreateWithQuestions(quiz *entity.Quiz, questions []entity.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to insert quiz: %w", err)
		}

		for i := range questions {
			questions[i].QuizID = quiz.ID
		}

		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return fmt.Errorf("failed to insert questions for quiz #%d: %w", quiz.ID, err)
			}
		}

		quiz.Questions = questions
		return nil
	})
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions").First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List возвращает викторины, новые первыми, с опциональным поиском по названию
func (r *QuizRepo) List(search string) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz

	query := r.db.Model(&entity.Quiz{})
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	err := query.Order("created_at DESC").Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// ListSummaries возвращает административный список викторин с агрегатами
func (r *QuizRepo) ListSummaries() ([]repository.QuizSummary, error) {
	var summaries []repository.QuizSummary

	err := r.db.Model(&entity.Quiz{}).
		Select(`quizzes.id,
			quizzes.title,
			quizzes.created_at,
			users.username AS created_by,
			COUNT(DISTINCT questions.id) AS question_count,
			COUNT(DISTINCT scores.id) AS attempt_count`).
		Joins("LEFT JOIN users ON quizzes.created_by = users.id").
		Joins("LEFT JOIN questions ON questions.quiz_id = quizzes.id").
		Joins("LEFT JOIN scores ON scores.quiz_id = quizzes.id").
		Group("quizzes.id, quizzes.title, quizzes.created_at, users.username").
		Order("quizzes.created_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete удаляет викторину. Вопросы и результаты удаляются каскадно
// внешними ключами. Отсутствующий id транслируется в ErrNotFound.
func (r *QuizRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Quiz{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
