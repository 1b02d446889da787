package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Типы вопросов опроса
const (
	QuestionTypeText         = "text"
	QuestionTypeNumber       = "number"
	QuestionTypeSlider       = "slider"
	QuestionTypeSingleChoice = "single_choice"
	QuestionTypeMultiChoice  = "multi_choice"

	// QuestionTypeBodyMap — вопрос с графической схемой тела: ответ хранит
	// сериализованную карту {areaId: intensity}.
	QuestionTypeBodyMap = "body_map"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос опроса.
// Вопросы заменяются целиком при редактировании опроса (delete-all, recreate),
// частичного обновления нет.
type Question struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID string `gorm:"type:uuid;not null;index" json:"survey_id"`
	Text     string `gorm:"size:500;not null" json:"text"`
	Type     string `gorm:"size:20;not null;default:'text'" json:"type"`

	// Options — варианты выбора либо тройка подписей слайдера (min/mid/max).
	// Для text/number/body_map пусто.
	Options  StringArray `gorm:"type:jsonb;not null" json:"options"`
	Required bool        `gorm:"not null" json:"required"`

	// Order задает порядок отображения и порядок колонок экспорта.
	// Уникальность в рамках опроса — конвенция, не constraint.
	Order int `gorm:"column:display_order;not null;default:0" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// BeforeCreate присваивает uuid, если ID не задан
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// IsBodyMap проверяет, является ли вопрос схемой тела
func (q *Question) IsBodyMap() bool {
	return q.Type == QuestionTypeBodyMap
}
