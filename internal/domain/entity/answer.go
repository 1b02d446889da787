package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer представляет ответ на один вопрос в рамках одной отправки.
// Value — произвольная строка: для обычных вопросов скаляр, для body_map —
// сериализованная карта {areaId: intensity}. Разбор формата выполняется
// при чтении (пакет bodymap), при записи значение не интерпретируется.
type Answer struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ResponseID string `gorm:"type:uuid;not null;index" json:"response_id"`
	QuestionID string `gorm:"type:uuid;not null;index" json:"question_id"`
	Value      string `gorm:"type:text;not null;default:''" json:"value"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}

// BeforeCreate присваивает uuid, если ID не задан
func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
