package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/repository"
)

// SurveyService реализует CRUD операций над опросами.
// Вопросы редактируются только целиком: при обновлении опроса прежний набор
// удаляется и создается заново внутри одной транзакции.
type SurveyService struct {
	db           *gorm.DB
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
}

// NewSurveyService создает новый сервис опросов
func NewSurveyService(db *gorm.DB, surveyRepo repository.SurveyRepository, questionRepo repository.QuestionRepository, cacheRepo repository.CacheRepository) *SurveyService {
	return &SurveyService{
		db:           db,
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
	}
}

// invalidateExportCache сбрасывает кешированный CSV опроса после его изменения.
// Редактирование вопросов меняет набор колонок, смена флагов — состав строк.
func (s *SurveyService) invalidateExportCache(surveyID string) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(exportCacheKey(surveyID)); err != nil {
		log.Printf("[SurveyService] Не удалось сбросить кеш экспорта для опроса %s: %v", surveyID, err)
	}
}

// Create создает опрос вместе с его вопросами
func (s *SurveyService) Create(survey *entity.Survey) error {
	if err := validateSurvey(survey); err != nil {
		return err
	}
	for i := range survey.Questions {
		if survey.Questions[i].Order == 0 {
			survey.Questions[i].Order = i
		}
	}
	if err := s.surveyRepo.Create(survey); err != nil {
		return fmt.Errorf("failed to create survey: %w", err)
	}
	log.Printf("[SurveyService] Создан опрос %s (%q) с %d вопросами", survey.ID, survey.Title, len(survey.Questions))
	return nil
}

// GetByID возвращает опрос без вопросов
func (s *SurveyService) GetByID(id string) (*entity.Survey, error) {
	return s.surveyRepo.GetByID(id)
}

// GetWithQuestions возвращает опрос с вопросами в порядке отображения
func (s *SurveyService) GetWithQuestions(id string) (*entity.Survey, error) {
	return s.surveyRepo.GetWithQuestions(id)
}

// List возвращает страницу опросов
func (s *SurveyService) List(filters repository.SurveyFilters, limit, offset int) ([]entity.Survey, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.surveyRepo.List(filters, limit, offset)
}

// Update обновляет опрос и целиком заменяет его вопросы одной транзакцией
func (s *SurveyService) Update(survey *entity.Survey, questions []entity.Question) (err error) {
	if err := validateSurvey(survey); err != nil {
		return err
	}
	if _, err := s.surveyRepo.GetByID(survey.ID); err != nil {
		return err
	}
	for i := range questions {
		if questions[i].Order == 0 {
			questions[i].Order = i
		}
	}

	tx := s.db.Begin()
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during survey update: %v", p)
			err = fmt.Errorf("panic during survey update: %v", p)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Model(&entity.Survey{}).Where("id = ?", survey.ID).Updates(map[string]interface{}{
		"title":            survey.Title,
		"description":      survey.Description,
		"is_active":        survey.IsActive,
		"is_recurring":     survey.IsRecurring,
		"start_date":       survey.StartDate,
		"end_date":         survey.EndDate,
		"daily_start_time": survey.DailyStartTime,
		"daily_end_time":   survey.DailyEndTime,
	}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update survey: %w", err)
	}

	if err := s.questionRepo.ReplaceForSurvey(tx, survey.ID, questions); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to replace survey questions: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit survey update: %w", err)
	}
	s.invalidateExportCache(survey.ID)
	log.Printf("[SurveyService] Обновлен опрос %s, вопросов: %d", survey.ID, len(questions))
	return nil
}

// SetActive переключает флаг активности опроса
func (s *SurveyService) SetActive(surveyID string, active bool) error {
	if err := s.surveyRepo.SetActive(surveyID, active); err != nil {
		return err
	}
	s.invalidateExportCache(surveyID)
	return nil
}

// Delete удаляет опрос со всеми вопросами и ответами
func (s *SurveyService) Delete(id string) error {
	if err := s.surveyRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateExportCache(id)
	log.Printf("[SurveyService] Удален опрос %s", id)
	return nil
}

// validateSurvey проверяет форму опроса.
// Дневные окна валидируются только синтаксически: рекуррентный опрос без
// времен сохраняется, но расписание считает его закрытым.
func validateSurvey(survey *entity.Survey) error {
	var fields []FieldError
	if survey.Title == "" {
		fields = append(fields, FieldError{Field: "title", Message: "is required"})
	}
	if survey.DailyStartTime != "" {
		if _, ok := parseClock(survey.DailyStartTime); !ok {
			fields = append(fields, FieldError{Field: "dailyStartTime", Message: "must be HH:MM"})
		}
	}
	if survey.DailyEndTime != "" {
		if _, ok := parseClock(survey.DailyEndTime); !ok {
			fields = append(fields, FieldError{Field: "dailyEndTime", Message: "must be HH:MM"})
		}
	}
	for i, q := range survey.Questions {
		if q.Text == "" {
			fields = append(fields, FieldError{Field: fmt.Sprintf("questions[%d].text", i), Message: "is required"})
		}
		if q.Type == "" {
			fields = append(fields, FieldError{Field: fmt.Sprintf("questions[%d].type", i), Message: "is required"})
		}
	}
	if len(fields) > 0 {
		return newValidationError(fields...)
	}
	return nil
}
