package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizgen-api/internal/domain/repository"
	"github.com/yourusername/quizgen-api/internal/handler/dto"
	"github.com/yourusername/quizgen-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService  *service.QuizService
	scoreService *service.ScoreService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, scoreService *service.ScoreService) *QuizHandler {
	return &QuizHandler{
		quizService:  quizService,
		scoreService: scoreService,
	}
}

// GenerateQuiz запускает генерацию новой викторины по теме
// POST /api/admin/generate-quiz
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	var req dto.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and topic are required"})
		return
	}

	userID := c.MustGet("user_id").(uint)

	quiz, err := h.quizService.GenerateQuiz(c.Request.Context(), req.Title, req.Topic, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Quiz generated successfully",
		"quiz_id":        quiz.ID,
		"question_count": quiz.QuestionCount(),
	})
}

// ListQuizzes возвращает список викторин с опциональным поиском по названию
// GET /api/quizzes?search=...
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	search := c.Query("search")

	quizzes, err := h.quizService.ListQuizzes(search)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizListResponse(quizzes))
}

// GetQuiz возвращает викторину с вопросами для прохождения.
// Правильные ответы в ответ не включаются.
// GET /api/quizzes/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuizWithQuestions(quizID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// ListQuizSummaries возвращает административный список викторин с агрегатами
// GET /api/admin/quizzes
func (h *QuizHandler) ListQuizSummaries(c *gin.Context) {
	summaries, err := h.quizService.ListQuizSummaries()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizSummaryListResponse(summaries))
}

// DeleteQuiz удаляет викторину вместе с вопросами и результатами
// DELETE /api/admin/quizzes/:id
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// ListQuizAttempts возвращает все попытки по викторине
// GET /api/admin/quizzes/:id/attempts
func (h *QuizHandler) ListQuizAttempts(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	attempts, err := h.scoreService.GetQuizAttempts(quizID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizAttemptListResponse(attempts))
}

// ExportQuizAttempts экспортирует попытки по викторине в CSV или Excel формате
// GET /api/admin/quizzes/:id/attempts/export?format=csv|xlsx
func (h *QuizHandler) ExportQuizAttempts(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	format := c.DefaultQuery("format", "csv")

	attempts, err := h.scoreService.GetQuizAttempts(quizID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_%d_attempts_%s", quizID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, attempts, filename)
	default:
		h.exportCSV(c, attempts, filename)
	}
}

// exportCSV выгружает попытки в CSV с правильным экранированием спецсимволов
func (h *QuizHandler) exportCSV(c *gin.Context, attempts []repository.QuizAttempt, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// Заголовки
	writer.Write([]string{"Пользователь", "Очки", "Всего вопросов", "Процент", "Дата прохождения"})

	// Данные
	for _, a := range attempts {
		percentage := ""
		if a.Total > 0 {
			percentage = fmt.Sprintf("%.1f%%", float64(a.Score)/float64(a.Total)*100)
		}

		writer.Write([]string{
			sanitizeForExcel(a.Username),
			strconv.Itoa(a.Score),
			strconv.Itoa(a.Total),
			percentage,
			a.TakenAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// exportXLSX выгружает попытки в Excel с использованием StreamWriter
func (h *QuizHandler) exportXLSX(c *gin.Context, attempts []repository.QuizAttempt, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Попытки"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuizHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"Пользователь", "Очки", "Всего вопросов", "Процент", "Дата прохождения"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, a := range attempts {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		percentage := 0.0
		if a.Total > 0 {
			percentage = float64(a.Score) / float64(a.Total) * 100
		}

		row := []interface{}{sanitizeForExcel(a.Username), a.Score, a.Total, percentage, a.TakenAt.Format("2006-01-02 15:04:05")}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[QuizHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuizHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
