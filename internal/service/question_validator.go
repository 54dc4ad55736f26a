package service

import (
	"math"
	"strings"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// ValidateGeneratedQuestions фильтрует слабо типизированные записи вопросов,
// полученные от генеративного сервиса, в валидные сущности Question.
//
// Запись принимается, только если:
//   - question_text - непустая строка;
//   - options - массив длиной не менее 2;
//   - correct_option - целое число в диапазоне [0, len(options)).
//
// Отбракованные записи отбрасываются молча (их количество возвращается
// вторым значением, чтобы вызывающая сторона могла его залогировать).
// Если после фильтрации не осталось ни одного вопроса, либо вход вовсе
// не был непустым массивом, возвращается ErrEmptyQuiz.
//
// Чистая функция: без I/O и побочных эффектов.
func ValidateGeneratedQuestions(raw []map[string]interface{}) ([]entity.Question, int, error) {
	if len(raw) == 0 {
		return nil, 0, apperrors.ErrEmptyQuiz
	}

	accepted := make([]entity.Question, 0, len(raw))
	rejected := 0

	for _, record := range raw {
		question, ok := parseQuestionRecord(record)
		if !ok {
			rejected++
			continue
		}
		accepted = append(accepted, question)
	}

	if len(accepted) == 0 {
		return nil, rejected, apperrors.ErrEmptyQuiz
	}
	return accepted, rejected, nil
}

// parseQuestionRecord проверяет одну запись и собирает из неё Question
func parseQuestionRecord(record map[string]interface{}) (entity.Question, bool) {
	text, ok := record["question_text"].(string)
	if !ok || strings.TrimSpace(text) == "" {
		return entity.Question{}, false
	}

	rawOptions, ok := record["options"].([]interface{})
	if !ok || len(rawOptions) < 2 {
		return entity.Question{}, false
	}

	// JSON-числа приходят как float64; принимаем только целые значения
	rawIndex, ok := record["correct_option"].(float64)
	if !ok || rawIndex != math.Trunc(rawIndex) {
		return entity.Question{}, false
	}
	correct := int(rawIndex)
	if correct < 0 || correct >= len(rawOptions) {
		return entity.Question{}, false
	}

	// Порядок вариантов значим и сохраняется: идентичность варианта
	// позиционная. Форма отдельного варианта запись не бракует.
	options := make(entity.OptionList, len(rawOptions))
	for i, rawOption := range rawOptions {
		if optionObj, ok := rawOption.(map[string]interface{}); ok {
			if optionText, ok := optionObj["text"].(string); ok {
				options[i].Text = optionText
			}
		}
	}

	return entity.Question{
		Text:          text,
		Options:       options,
		CorrectOption: correct,
	}, true
}
