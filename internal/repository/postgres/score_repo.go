package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
)

// ScoreRepo реализует repository.ScoreRepository
type ScoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo создает новый репозиторий результатов
func NewScoreRepo(db *gorm.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// Create сохраняет результат попытки. Записи неизменяемые, обновлений нет.
func (r *ScoreRepo) Create(score *entity.Score) error {
	return r.db.Create(score).Error
}

// ListByUser возвращает попытки пользователя вместе с названиями викторин
func (r *ScoreRepo) ListByUser(userID uint) ([]repository.UserScore, error) {
	var scores []repository.UserScore

	err := r.db.Model(&entity.Score{}).
		Select("scores.quiz_id, quizzes.title, scores.score, scores.total, scores.taken_at").
		Joins("JOIN quizzes ON scores.quiz_id = quizzes.id").
		Where("scores.user_id = ?", userID).
		Order("scores.taken_at DESC").
		Scan(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// ListByQuiz возвращает все попытки по викторине вместе с именами студентов
func (r *ScoreRepo) ListByQuiz(quizID uint) ([]repository.QuizAttempt, error) {
	var attempts []repository.QuizAttempt

	err := r.db.Model(&entity.Score{}).
		Select("scores.id, users.username, scores.score, scores.total, scores.taken_at").
		Joins("JOIN users ON scores.user_id = users.id").
		Where("scores.quiz_id = ?", quizID).
		Order("scores.taken_at DESC").
		Scan(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
