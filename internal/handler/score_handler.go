package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgen-api/internal/handler/dto"
	"github.com/yourusername/quizgen-api/internal/service"
)

// ScoreHandler обрабатывает сдачу викторин и историю результатов
type ScoreHandler struct {
	scoreService *service.ScoreService
}

// NewScoreHandler создает новый обработчик результатов
func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// SubmitQuiz принимает ответы студента и возвращает подсчитанный результат
// POST /api/quizzes/:id/submit
func (h *ScoreHandler) SubmitQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID := c.MustGet("user_id").(uint)

	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answers array is required"})
		return
	}

	score, err := h.scoreService.SubmitQuiz(quizID, userID, req.Answers)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Quiz submitted successfully",
		"score":   score.Score,
		"total":   score.Total,
	})
}

// GetMyScores возвращает историю попыток текущего пользователя
// GET /api/my-scores
func (h *ScoreHandler) GetMyScores(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	scores, err := h.scoreService.GetUserScores(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserScoreListResponse(scores))
}
