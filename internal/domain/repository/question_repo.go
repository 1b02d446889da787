package repository

import (
	"gorm.io/gorm"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами опросов.
// Вопросы редактируются только целиком (delete-all, recreate), поэтому
// точечных Update-методов здесь нет.
type QuestionRepository interface {
	CreateBatch(questions []entity.Question) error
	GetBySurveyID(surveyID string) ([]entity.Question, error)
	// ReplaceForSurvey в транзакции tx удаляет все вопросы опроса и создает новые
	ReplaceForSurvey(tx *gorm.DB, surveyID string, questions []entity.Question) error
}
