package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response представляет одну завершенную отправку опроса одним респондентом.
// Инвариант "не более одного ответа на игрока в день" обеспечивает
// ResponseService, а не constraint в базе.
type Response struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID string `gorm:"type:uuid;not null;index" json:"survey_id"`

	// PlayerID пуст для анонимных отправок; такие ответы не дедуплицируются.
	PlayerID *string `gorm:"type:uuid;index" json:"player_id,omitempty"`

	// PlayerName — денормализованный снимок имени на момент отправки
	PlayerName string `gorm:"size:200;not null;default:''" json:"player_name"`

	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`

	Answers []Answer `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Response) TableName() string {
	return "responses"
}

// BeforeCreate присваивает uuid, если ID не задан
func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
