package dto

import (
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
)

// GenerateQuizRequest - запрос администратора на генерацию викторины
type GenerateQuizRequest struct {
	Title string `json:"title" binding:"required"`
	Topic string `json:"topic" binding:"required"`
}

// QuestionResponse - вопрос викторины без правильного ответа.
// correct_option намеренно отсутствует: студент не должен его видеть.
type QuestionResponse struct {
	ID      uint                    `json:"id"`
	QuizID  uint                    `json:"quiz_id"`
	Text    string                  `json:"question_text"`
	Options []entity.QuestionOption `json:"options"`
}

// QuizResponse - викторина с вопросами для прохождения
type QuizResponse struct {
	ID        uint               `json:"id"`
	Title     string             `json:"title"`
	CreatedAt time.Time          `json:"created_at"`
	Questions []QuestionResponse `json:"questions"`
}

// QuizListItem - элемент списка викторин для студентов
type QuizListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// QuizSummaryResponse - элемент административного списка с агрегатами
type QuizSummaryResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	CreatedBy     string    `json:"created_by"`
	QuestionCount int64     `json:"question_count"`
	AttemptCount  int64     `json:"attempt_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewQuestionResponse преобразует вопрос в безопасное для студента представление
func NewQuestionResponse(question *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:      question.ID,
		QuizID:  question.QuizID,
		Text:    question.Text,
		Options: question.Options,
	}
}

// NewQuizResponse преобразует викторину с вопросами в ответ API
func NewQuizResponse(quiz *entity.Quiz) QuizResponse {
	questions := make([]QuestionResponse, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		questions = append(questions, NewQuestionResponse(&quiz.Questions[i]))
	}
	return QuizResponse{
		ID:        quiz.ID,
		Title:     quiz.Title,
		CreatedAt: quiz.CreatedAt,
		Questions: questions,
	}
}

// NewQuizListResponse преобразует список викторин в ответ API
func NewQuizListResponse(quizzes []entity.Quiz) []QuizListItem {
	items := make([]QuizListItem, 0, len(quizzes))
	for i := range quizzes {
		items = append(items, QuizListItem{
			ID:        quizzes[i].ID,
			Title:     quizzes[i].Title,
			CreatedAt: quizzes[i].CreatedAt,
		})
	}
	return items
}

// NewQuizSummaryListResponse преобразует агрегаты репозитория в ответ API
func NewQuizSummaryListResponse(summaries []repository.QuizSummary) []QuizSummaryResponse {
	items := make([]QuizSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, QuizSummaryResponse{
			ID:            s.ID,
			Title:         s.Title,
			CreatedBy:     s.CreatedBy,
			QuestionCount: s.QuestionCount,
			AttemptCount:  s.AttemptCount,
			CreatedAt:     s.CreatedAt,
		})
	}
	return items
}
