package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/yourusername/quizgen-api/internal/ai"
	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// ContentGenerator описывает клиент генеративного сервиса.
// Интерфейс выделен, чтобы конвейер можно было тестировать без сети.
type ContentGenerator interface {
	Configured() bool
	Generate(ctx context.Context, req *ai.GenerateContentRequest) (*ai.GenerateContentResponse, error)
}

// QuizService реализует конвейер генерации викторин и операции чтения/удаления
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
	generator    ContentGenerator
}

// NewQuizService создает новый сервис викторин.
// cacheRepo может быть nil, если кеш не сконфигурирован.
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
	generator ContentGenerator,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
		generator:    generator,
	}
}

// GenerateQuiz выполняет полный конвейер генерации викторины:
// строит запрос из темы, вызывает генеративный сервис, валидирует ответ
// и атомарно сохраняет викторину вместе с вопросами.
//
// Возможные ошибки: ErrMissingConfiguration (ключ API не задан, проверяется
// до сети), ErrUpstreamService (сбой сервиса после повторов),
// ErrMalformedResponse (конверт или JSON нарушают контракт),
// ErrEmptyQuiz (ни одного валидного вопроса).
func (s *QuizService) GenerateQuiz(ctx context.Context, title, topicPrompt string, createdBy uint) (*entity.Quiz, error) {
	if !s.generator.Configured() {
		return nil, fmt.Errorf("%w: AI service API key is not set", apperrors.ErrMissingConfiguration)
	}

	requestID := uuid.NewString()
	log.Printf("[QuizService] Генерация викторины %q начата, request_id=%s", title, requestID)

	resp, err := s.generator.Generate(ctx, buildGenerationRequest(topicPrompt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamService, err)
	}

	jsonText := resp.FirstCandidateText()
	if jsonText == "" {
		return nil, fmt.Errorf("%w: response contains no candidate text", apperrors.ErrMalformedResponse)
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, fmt.Errorf("%w: candidate text is not a question array: %v", apperrors.ErrMalformedResponse, err)
	}

	questions, rejected, err := ValidateGeneratedQuestions(raw)
	if err != nil {
		return nil, err
	}
	if rejected > 0 {
		log.Printf("[QuizService] Отброшено %d некорректных вопросов из ответа сервиса, request_id=%s", rejected, requestID)
	}

	quiz := &entity.Quiz{
		Title:     title,
		CreatedBy: createdBy,
	}
	if err := s.quizRepo.CreateWithQuestions(quiz, questions); err != nil {
		return nil, fmt.Errorf("failed to save generated quiz: %w", err)
	}

	log.Printf("[QuizService] Викторина #%d создана: %d вопросов, request_id=%s", quiz.ID, len(questions), requestID)
	return quiz, nil
}

// GetQuizWithQuestions возвращает викторину вместе с вопросами
func (s *QuizService) GetQuizWithQuestions(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(quizID)
}

// ListQuizzes возвращает викторины с опциональным поиском по названию
func (s *QuizService) ListQuizzes(search string) ([]entity.Quiz, error) {
	return s.quizRepo.List(search)
}

// ListQuizSummaries возвращает административный список викторин с агрегатами
func (s *QuizService) ListQuizSummaries() ([]repository.QuizSummary, error) {
	return s.quizRepo.ListSummaries()
}

// DeleteQuiz удаляет викторину вместе с вопросами и результатами (каскадно)
func (s *QuizService) DeleteQuiz(quizID uint) error {
	if err := s.quizRepo.Delete(quizID); err != nil {
		return err
	}

	// Сбрасываем закешированный ключ ответов удаленной викторины
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(answerKeyCacheKey(quizID)); err != nil {
			log.Printf("[QuizService] Не удалось сбросить кеш ключа ответов викторины #%d: %v", quizID, err)
		}
	}
	return nil
}

// buildGenerationRequest строит единственный запрос генерации: инструкция
// с темой викторины плюс структурная схема ожидаемого JSON-ответа
func buildGenerationRequest(topicPrompt string) *ai.GenerateContentRequest {
	instruction := fmt.Sprintf(`Generate a quiz based on the following topic: %q.

Please provide the output in the requested JSON format.

- The quiz should have a reasonable number of questions (e.g., 5-10) unless specified otherwise.
- Each question must have between 3 and 5 multiple-choice options.
- Each question must have exactly one correct answer, indicated by the 'correct_option' index.`, topicPrompt)

	return &ai.GenerateContentRequest{
		Contents: []ai.Content{
			{Parts: []ai.Part{{Text: instruction}}},
		},
		GenerationConfig: &ai.GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   quizResponseSchema(),
		},
	}
}

// quizResponseSchema описывает контракт ответа: массив вопросов с вариантами
// и 0-based индексом правильного варианта
func quizResponseSchema() *ai.Schema {
	return &ai.Schema{
		Type: "ARRAY",
		Items: &ai.Schema{
			Type: "OBJECT",
			Properties: map[string]*ai.Schema{
				"question_text": {Type: "STRING"},
				"options": {
					Type: "ARRAY",
					Items: &ai.Schema{
						Type: "OBJECT",
						Properties: map[string]*ai.Schema{
							"text": {Type: "STRING"},
						},
						Required: []string{"text"},
					},
				},
				"correct_option": {
					Type:        "NUMBER",
					Description: "The 0-based index of the correct option in the 'options' array.",
				},
			},
			Required: []string{"question_text", "options", "correct_option"},
		},
	}
}
