package repository

import (
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
)

// SurveyFilters определяет фильтры для поиска опросов
type SurveyFilters struct {
	ActiveOnly bool   // Только опросы с включенным флагом is_active
	Search     string // Поиск по названию/описанию
}

// SurveyRepository определяет методы для работы с опросами
type SurveyRepository interface {
	Create(survey *entity.Survey) error
	GetByID(id string) (*entity.Survey, error)
	// GetWithQuestions возвращает опрос вместе с вопросами,
	// отсортированными по display_order
	GetWithQuestions(id string) (*entity.Survey, error)
	List(filters SurveyFilters, limit, offset int) ([]entity.Survey, int64, error)
	Update(survey *entity.Survey) error
	// SetActive точечно переключает флаг is_active без full Save
	SetActive(surveyID string, active bool) error
	// Delete удаляет опрос; вопросы, ответы и их Answers каскадируются на уровне БД
	Delete(id string) error
}
