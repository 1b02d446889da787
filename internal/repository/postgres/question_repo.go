package postgres

import (
	"gorm.io/gorm"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// CreateBatch создает вопросы одной вставкой
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

// GetBySurveyID возвращает вопросы опроса в порядке display_order
func (r *QuestionRepo) GetBySurveyID(surveyID string) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.
		Where("survey_id = ?", surveyID).
		Order("display_order, id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ReplaceForSurvey удаляет все вопросы опроса и создает новые внутри переданной
// транзакции. Вопросы редактируются только целиком, поэтому прежние Answers
// по ним теряют смысл и каскадируются на уровне БД.
func (r *QuestionRepo) ReplaceForSurvey(tx *gorm.DB, surveyID string, questions []entity.Question) error {
	if err := tx.Where("survey_id = ?", surveyID).Delete(&entity.Question{}).Error; err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	for i := range questions {
		questions[i].SurveyID = surveyID
	}
	return tx.Create(&questions).Error
}
