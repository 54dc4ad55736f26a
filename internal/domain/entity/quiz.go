package entity

import (
	"time"
)

// Quiz представляет викторину: именованный набор вопросов одного автора.
// Вопросы принадлежат викторине и удаляются каскадно вместе с ней.
type Quiz struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	CreatedBy uint       `gorm:"not null;index" json:"created_by"`
	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// QuestionCount возвращает количество загруженных вопросов
func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}
