package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// QuestionOption представляет один вариант ответа.
// Идентичность варианта позиционная: индекс в массиве, а не текст.
type QuestionOption struct {
	Text string `json:"text"`
}

// OptionList - пользовательский тип для работы с JSONB
type OptionList []QuestionOption

// Scan реализует интерфейс sql.Scanner для OptionList
// Используется GORM для чтения JSONB данных из базы
func (o *OptionList) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = OptionList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = OptionList{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для OptionList
// Используется GORM для записи OptionList в JSONB в базе
func (o OptionList) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос викторины.
// CorrectOption никогда не сериализуется в JSON: правильный ответ
// читает только путь подсчёта результата.
type Question struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	QuizID        uint       `gorm:"not null;index" json:"quiz_id"`
	Text          string     `gorm:"column:question_text;not null" json:"question_text"`
	Options       OptionList `gorm:"type:jsonb;not null" json:"options"`
	CorrectOption int        `gorm:"not null" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectOption
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}
