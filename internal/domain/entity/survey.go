package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Survey представляет опрос самочувствия, который персонал запускает по расписанию
type Survey struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:1000;not null;default:''" json:"description"`

	// IsActive — ручной флаг "принимает ответы". Для повторяющихся опросов
	// фактическую доступность окна считает ScheduleService.
	IsActive    bool `gorm:"not null" json:"is_active"`
	IsRecurring bool `gorm:"not null" json:"is_recurring"`

	// Границы периода повторения (календарные даты, обе опциональны)
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// Ежедневное окно приема в формате HH:MM (референсная таймзона).
	// Пустая строка = не задано; для IsRecurring это деградированное состояние,
	// ScheduleService трактует его как "закрыто".
	DailyStartTime string `gorm:"size:5;not null;default:''" json:"daily_start_time"`
	DailyEndTime   string `gorm:"size:5;not null;default:''" json:"daily_end_time"`

	Questions []Question `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Survey) TableName() string {
	return "surveys"
}

// BeforeCreate присваивает uuid, если ID не задан
func (s *Survey) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
