package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
)

// answerKeyCacheTTL - время жизни закешированного ключа ответов.
// Вопросы после создания не изменяются, поэтому TTL служит только
// ограничителем памяти, а не механизмом консистентности.
const answerKeyCacheTTL = 10 * time.Minute

// SubmittedAnswer представляет один ответ студента.
// AnswerIndex может отсутствовать (вопрос пропущен) - nil никогда не совпадает.
type SubmittedAnswer struct {
	QuestionID  uint `json:"questionId"`
	AnswerIndex *int `json:"answerIndex"`
}

// ScoreService подсчитывает результаты попыток и ведет их историю
type ScoreService struct {
	scoreRepo    repository.ScoreRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
}

// NewScoreService создает новый сервис результатов.
// cacheRepo может быть nil, если кеш не сконфигурирован.
func NewScoreService(
	scoreRepo repository.ScoreRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
) *ScoreService {
	return &ScoreService{
		scoreRepo:    scoreRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
	}
}

// SubmitQuiz подсчитывает результат попытки и сохраняет его.
//
// total - количество вопросов викторины, а не количество присланных
// ответов: лишние, чужие и пропущенные вопросы не считаются ошибкой.
// Засчитывается строгое совпадение индекса с ключом ответов.
// Подсчет детерминирован и не зависит от порядка ответов.
func (s *ScoreService) SubmitQuiz(quizID, userID uint, answers []SubmittedAnswer) (*entity.Score, error) {
	// Викторина должна существовать
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}

	answerKey, err := s.loadAnswerKey(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer key for quiz #%d: %w", quizID, err)
	}

	score := 0
	for _, answer := range answers {
		correct, exists := answerKey[answer.QuestionID]
		if !exists || answer.AnswerIndex == nil {
			// Чужой вопрос или пропущенный ответ - молча игнорируем
			continue
		}
		if *answer.AnswerIndex == correct {
			score++
		}
	}

	record := &entity.Score{
		UserID: userID,
		QuizID: quizID,
		Score:  score,
		Total:  len(answerKey),
	}
	if err := s.scoreRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to save score for quiz #%d: %w", quizID, err)
	}

	return record, nil
}

// GetUserScores возвращает попытки пользователя, новые первыми
func (s *ScoreService) GetUserScores(userID uint) ([]repository.UserScore, error) {
	return s.scoreRepo.ListByUser(userID)
}

// GetQuizAttempts возвращает все попытки по викторине.
// Возвращает ErrNotFound, если викторина не существует.
func (s *ScoreService) GetQuizAttempts(quizID uint) ([]repository.QuizAttempt, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}
	return s.scoreRepo.ListByQuiz(quizID)
}

// loadAnswerKey читает ключ ответов из кеша с фолбэком в БД.
// Промах кеша лениво заполняет его; ошибки кеша не фатальны.
func (s *ScoreService) loadAnswerKey(quizID uint) (map[uint]int, error) {
	cacheKey := answerKeyCacheKey(quizID)

	if s.cacheRepo != nil {
		var cached map[uint]int
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	answerKey, err := s.questionRepo.GetAnswerKey(quizID)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil && len(answerKey) > 0 {
		if err := s.cacheRepo.SetJSON(cacheKey, answerKey, answerKeyCacheTTL); err != nil {
			log.Printf("[ScoreService] Не удалось закешировать ключ ответов викторины #%d: %v", quizID, err)
		}
	}
	return answerKey, nil
}

// answerKeyCacheKey возвращает ключ кеша для ключа ответов викторины
func answerKeyCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:%d:answer_key", quizID)
}
