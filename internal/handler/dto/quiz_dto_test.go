package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

func TestNewQuizResponse_HidesCorrectOption(t *testing.T) {
	// Arrange: викторина с вопросами, у которых известны правильные ответы
	quiz := &entity.Quiz{
		ID:    1,
		Title: "Солнечная система",
		Questions: []entity.Question{
			{
				ID:            10,
				QuizID:        1,
				Text:          "Какая планета ближе всех к Солнцу?",
				Options:       entity.OptionList{{Text: "Меркурий"}, {Text: "Венера"}},
				CorrectOption: 0,
			},
		},
	}

	// Act
	resp := NewQuizResponse(quiz)
	data, err := json.Marshal(resp)

	// Assert: ответ API не содержит correct_option ни в каком виде
	require.NoError(t, err)
	assert.NotContains(t, string(data), "correct_option")
	assert.Contains(t, string(data), "Меркурий")

	require.Len(t, resp.Questions, 1)
	assert.Equal(t, uint(10), resp.Questions[0].ID)
	assert.Len(t, resp.Questions[0].Options, 2)
}

func TestNewQuizResponse_EmptyQuestions(t *testing.T) {
	// Arrange
	quiz := &entity.Quiz{ID: 2, Title: "Пустая"}

	// Act
	resp := NewQuizResponse(quiz)
	data, err := json.Marshal(resp)

	// Assert: questions сериализуется как [], а не null
	require.NoError(t, err)
	assert.Contains(t, string(data), `"questions":[]`)
}
