package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/repository"
	apperrors "github.com/aleksacoach93b/wellness-monitor-sub000/internal/pkg/errors"
)

// SurveyRepo реализует repository.SurveyRepository
type SurveyRepo struct {
	db *gorm.DB
}

// NewSurveyRepo создает новый репозиторий опросов
func NewSurveyRepo(db *gorm.DB) *SurveyRepo {
	return &SurveyRepo{db: db}
}

// Create создает новый опрос (вместе с вопросами, если они заданы)
func (r *SurveyRepo) Create(survey *entity.Survey) error {
	return r.db.Create(survey).Error
}

// GetByID возвращает опрос по ID
func (r *SurveyRepo) GetByID(id string) (*entity.Survey, error) {
	var survey entity.Survey
	err := r.db.First(&survey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &survey, nil
}

// GetWithQuestions возвращает опрос вместе с вопросами в порядке display_order
func (r *SurveyRepo) GetWithQuestions(id string) (*entity.Survey, error) {
	var survey entity.Survey
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order, id")
		}).
		First(&survey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &survey, nil
}

// List возвращает список опросов с фильтрами и total count
func (r *SurveyRepo) List(filters repository.SurveyFilters, limit, offset int) ([]entity.Survey, int64, error) {
	var surveys []entity.Survey
	var total int64

	query := r.db.Model(&entity.Survey{})

	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.Search != "" {
		search := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("created_at DESC, id").Find(&surveys).Error
	if err != nil {
		return nil, 0, err
	}

	return surveys, total, nil
}

// Update обновляет информацию об опросе
func (r *SurveyRepo) Update(survey *entity.Survey) error {
	return r.db.Save(survey).Error
}

// SetActive точечно переключает флаг is_active
func (r *SurveyRepo) SetActive(surveyID string, active bool) error {
	result := r.db.Model(&entity.Survey{}).
		Where("id = ?", surveyID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет опрос; вопросы, ответы и Answers каскадируются FK-constraints
func (r *SurveyRepo) Delete(id string) error {
	result := r.db.Delete(&entity.Survey{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
