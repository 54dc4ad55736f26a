package dto

import (
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/repository"
	"github.com/yourusername/quizgen-api/internal/service"
)

// SubmitQuizRequest - ответы студента на викторину
type SubmitQuizRequest struct {
	Answers []service.SubmittedAnswer `json:"answers" binding:"required"`
}

// UserScoreResponse - одна попытка в истории пользователя
type UserScoreResponse struct {
	QuizID  uint      `json:"quiz_id"`
	Title   string    `json:"quiz_title"`
	Score   int       `json:"score"`
	Total   int       `json:"total"`
	TakenAt time.Time `json:"taken_at"`
}

// QuizAttemptResponse - одна попытка в административном списке по викторине
type QuizAttemptResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	TakenAt    time.Time `json:"taken_at"`
}

// NewUserScoreListResponse преобразует историю попыток пользователя в ответ API
func NewUserScoreListResponse(scores []repository.UserScore) []UserScoreResponse {
	items := make([]UserScoreResponse, 0, len(scores))
	for _, s := range scores {
		items = append(items, UserScoreResponse{
			QuizID:  s.QuizID,
			Title:   s.Title,
			Score:   s.Score,
			Total:   s.Total,
			TakenAt: s.TakenAt,
		})
	}
	return items
}

// NewQuizAttemptListResponse преобразует попытки по викторине в ответ API
func NewQuizAttemptListResponse(attempts []repository.QuizAttempt) []QuizAttemptResponse {
	items := make([]QuizAttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		percentage := 0.0
		if a.Total > 0 {
			percentage = float64(a.Score) / float64(a.Total) * 100
		}
		items = append(items, QuizAttemptResponse{
			ID:         a.ID,
			Username:   a.Username,
			Score:      a.Score,
			Total:      a.Total,
			Percentage: percentage,
			TakenAt:    a.TakenAt,
		})
	}
	return items
}
