package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// MockScoreRepository реализует repository.ScoreRepository.
// Остальные моки определены в quiz_service_test.go.
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Create(score *entity.Score) error {
	args := m.Called(score)
	return args.Error(0)
}

func (m *MockScoreRepository) ListByUser(userID uint) ([]repository.UserScore, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserScore), args.Error(1)
}

func (m *MockScoreRepository) ListByQuiz(quizID uint) ([]repository.QuizAttempt, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.QuizAttempt), args.Error(1)
}

func intPtr(v int) *int { return &v }

func existingQuiz(id uint) *entity.Quiz {
	return &entity.Quiz{ID: id, Title: "Тестовая викторина"}
}

func TestScoreService_SubmitQuiz_PartialAnswers(t *testing.T) {
	// Arrange: два вопроса, первый отвечен верно, второй пропущен
	scoreRepo := new(MockScoreRepository)
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	svc := NewScoreService(scoreRepo, quizRepo, questionRepo, nil)

	quizRepo.On("GetByID", uint(1)).Return(existingQuiz(1), nil)
	questionRepo.On("GetAnswerKey", uint(1)).Return(map[uint]int{10: 0, 11: 2}, nil)
	scoreRepo.On("Create", mock.AnythingOfType("*entity.Score")).Return(nil)

	answers := []SubmittedAnswer{
		{QuestionID: 10, AnswerIndex: intPtr(0)},
		{QuestionID: 11, AnswerIndex: nil},
	}

	// Act
	score, err := svc.SubmitQuiz(1, 5, answers)

	// Assert: 1 из 2, пропущенный вопрос не засчитан
	require.NoError(t, err)
	assert.Equal(t, 1, score.Score)
	assert.Equal(t, 2, score.Total)
	assert.Equal(t, uint(5), score.UserID)
	assert.Equal(t, uint(1), score.QuizID)
	scoreRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestScoreService_SubmitQuiz_OrderIndependent(t *testing.T) {
	// Arrange: ответы приходят в обратном порядке
	scoreRepo := new(MockScoreRepository)
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	svc := NewScoreService(scoreRepo, quizRepo, questionRepo, nil)

	quizRepo.On("GetByID", uint(1)).Return(existingQuiz(1), nil)
	questionRepo.On("GetAnswerKey", uint(1)).Return(map[uint]int{10: 1, 11: 0, 12: 2}, nil)
	scoreRepo.On("Create", mock.Anything).Return(nil)

	answers := []SubmittedAnswer{
		{QuestionID: 12, AnswerIndex: intPtr(2)},
		{QuestionID: 10, AnswerIndex: intPtr(1)},
		{QuestionID: 11, AnswerIndex: intPtr(0)},
	}

	// Act
	score, err := svc.SubmitQuiz(1, 5, answers)

	// Assert: порядок ответов не влияет на результат
	require.NoError(t, err)
	assert.Equal(t, 3, score.Score)
	assert.Equal(t, 3, score.Total)
}

func TestScoreService_SubmitQuiz_ForeignQuestionsIgnored(t *testing.T) {
	// Arrange: ответ на вопрос чужой викторины
	scoreRepo := new(MockScoreRepository)
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	svc := NewScoreService(scoreRepo, quizRepo, questionRepo, nil)

	quizRepo.On("GetByID", uint(1)).Return(existingQuiz(1), nil)
	questionRepo.On("GetAnswerKey", uint(1)).Return(map[uint]int{10: 0}, nil)
	scoreRepo.On("Create", mock.Anything).Return(nil)

	answers := []SubmittedAnswer{
		{QuestionID: 10, AnswerIndex: intPtr(0)},
		{QuestionID: 999, AnswerIndex: intPtr(0)}, // вопрос другой викторины
	}

	// Act
	score, err := svc.SubmitQuiz(1, 5, answers)

	// Assert: чужой вопрос молча игнорируется, total не раздувается
	require.NoError(t, err)
	assert.Equal(t, 1, score.Score)
	assert.Equal(t, 1, score.Total)
	assert.LessOrEqual(t, score.Score, score.Total)
}

func TestScoreService_SubmitQuiz_EmptyAnswers(t *testing.T) {
	// Arrange: пустой массив ответов допустим
	scoreRepo := new(MockScoreRepository)
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	svc := NewScoreService(scoreRepo, quizRepo, questionRepo, nil)

	quizRepo.On("GetByID", uint(1)).Return(existingQuiz(1), nil)
	questionRepo.On("GetAnswerKey", uint(1)).Return(map[uint]int{10: 0, 11: 1}, nil)
	scoreRepo.On("Create", mock.Anything).Return(nil)

	// Act
	score, err := svc.SubmitQuiz(1, 5, nil)

	// Assert: результат 0 из N сохраняется
	require.NoError(t, err)
	assert.Equal(t, 0, score.Score)
	assert.Equal(t, 2, score.Total)
	scoreRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestScoreService_SubmitQuiz_QuizNotFound(t *testing.T) {
	// Arrange: викторина не существует
	scoreRepo := new(MockScoreRepository)
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	svc := NewScoreService(scoreRepo, quizRepo, questionRepo, nil)

	quizRepo.On("GetByID", uint(404)).Return(nil, apperrors.ErrNotFound)

	// Act
	score, err := svc.SubmitQuiz(404, 5, nil)

	// Assert: ничего не сохраняется
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, score)
	scoreRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestScoreService_SubmitQuiz_UsesCachedAnswerKey(t *testing.T) {
	// Arrange: ключ ответов лежит в кеше, БД не опрашивается
	scoreRepo := new(MockScoreRepository)
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	cacheRepo := new(MockCacheRepository)
	svc := NewScoreService(scoreRepo, quizRepo, questionRepo, cacheRepo)

	quizRepo.On("GetByID", uint(1)).Return(existingQuiz(1), nil)
	cacheRepo.On("GetJSON", "quiz:1:answer_key", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*map[uint]int)
			*dest = map[uint]int{10: 1}
		}).
		Return(nil)
	scoreRepo.On("Create", mock.Anything).Return(nil)

	// Act
	score, err := svc.SubmitQuiz(1, 5, []SubmittedAnswer{{QuestionID: 10, AnswerIndex: intPtr(1)}})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, score.Score)
	questionRepo.AssertNotCalled(t, "GetAnswerKey", mock.Anything)
}

func TestScoreService_SubmitQuiz_CacheMissFillsCache(t *testing.T) {
	// Arrange: промах кеша, ключ читается из БД и лениво кешируется
	scoreRepo := new(MockScoreRepository)
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	cacheRepo := new(MockCacheRepository)
	svc := NewScoreService(scoreRepo, quizRepo, questionRepo, cacheRepo)

	quizRepo.On("GetByID", uint(1)).Return(existingQuiz(1), nil)
	cacheRepo.On("GetJSON", "quiz:1:answer_key", mock.Anything).Return(apperrors.ErrNotFound)
	questionRepo.On("GetAnswerKey", uint(1)).Return(map[uint]int{10: 0}, nil)
	cacheRepo.On("SetJSON", "quiz:1:answer_key", mock.Anything, answerKeyCacheTTL).Return(nil)
	scoreRepo.On("Create", mock.Anything).Return(nil)

	// Act
	_, err := svc.SubmitQuiz(1, 5, nil)

	// Assert
	require.NoError(t, err)
	cacheRepo.AssertExpectations(t)
	questionRepo.AssertExpectations(t)
}

func TestScoreService_GetQuizAttempts_QuizNotFound(t *testing.T) {
	// Arrange
	scoreRepo := new(MockScoreRepository)
	quizRepo := new(MockQuizRepository)
	svc := NewScoreService(scoreRepo, quizRepo, new(MockQuestionRepository), nil)

	quizRepo.On("GetByID", uint(404)).Return(nil, apperrors.ErrNotFound)

	// Act
	attempts, err := svc.GetQuizAttempts(404)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, attempts)
	scoreRepo.AssertNotCalled(t, "ListByQuiz", mock.Anything)
}
