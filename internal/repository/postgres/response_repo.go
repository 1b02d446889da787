package postgres

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/repository"
	apperrors "github.com/aleksacoach93b/wellness-monitor-sub000/internal/pkg/errors"
)

// ResponseRepo реализует repository.ResponseRepository
type ResponseRepo struct {
	db *gorm.DB
}

// NewResponseRepo создает новый репозиторий ответов
func NewResponseRepo(db *gorm.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// ReplaceDailyResponse выполняет delete-then-insert замену дневного ответа
// одной транзакцией.
//
// Advisory-лок по ключу (surveyID, playerID, день) закрывает гонку двух
// конкурентных отправок: обе видят "ответа еще нет" и обе вставляют. Под
// локом второй писатель ждет коммита первого и затем удаляет его строки —
// после завершения обеих остается ровно один ответ за день (last writer wins).
func (r *ResponseRepo) ReplaceDailyResponse(response *entity.Response, window *repository.TimeWindow) (err error) {
	tx := r.db.Begin()
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during ReplaceDailyResponse: %v", p)
			// Прерванная транзакция не должна выглядеть успешной отправкой
			err = fmt.Errorf("panic during response replacement: %v", p)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if window != nil && response.PlayerID != nil {
		day := window.From.Format("2006-01-02")
		lockKey := fmt.Sprintf("submit:%s:%s:%s", response.SurveyID, *response.PlayerID, day)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", lockKey).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to acquire daily submit lock: %w", err)
		}

		var staleIDs []string
		if err := tx.Model(&entity.Response{}).
			Where("survey_id = ? AND player_id = ? AND submitted_at >= ? AND submitted_at < ?",
				response.SurveyID, *response.PlayerID, window.From, window.To).
			Pluck("id", &staleIDs).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to find same-day responses: %w", err)
		}

		if len(staleIDs) > 0 {
			// Сначала Answers, затем Response — порядок следует из владения
			if err := tx.Where("response_id IN ?", staleIDs).Delete(&entity.Answer{}).Error; err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to delete same-day answers: %w", err)
			}
			if err := tx.Where("id IN ?", staleIDs).Delete(&entity.Response{}).Error; err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to delete same-day responses: %w", err)
			}
			log.Printf("[ResponseRepo] Заменяю %d дневных ответов для опроса %s, игрок %s",
				len(staleIDs), response.SurveyID, *response.PlayerID)
		}
	}

	// Create сохраняет Response вместе с ассоциированными Answers
	if err := tx.Create(response).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create response: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit response replacement: %w", err)
	}
	return nil
}

// GetBySurveyID возвращает все ответы опроса с Answers.
// Сортировка (submitted_at, id) фиксирована: от нее зависит порядок строк экспорта.
func (r *ResponseRepo) GetBySurveyID(surveyID string) ([]entity.Response, error) {
	var responses []entity.Response
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_id, id")
		}).
		Where("survey_id = ?", surveyID).
		Order("submitted_at, id").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// GetLatestInWindow возвращает последний ответ пары (surveyID, playerID) в окне
func (r *ResponseRepo) GetLatestInWindow(surveyID, playerID string, window repository.TimeWindow) (*entity.Response, error) {
	var response entity.Response
	err := r.db.
		Preload("Answers").
		Where("survey_id = ? AND player_id = ? AND submitted_at >= ? AND submitted_at < ?",
			surveyID, playerID, window.From, window.To).
		Order("submitted_at DESC, id DESC").
		First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &response, nil
}

// CountBySurveyID возвращает количество ответов опроса
func (r *ResponseRepo) CountBySurveyID(surveyID string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Response{}).
		Where("survey_id = ?", surveyID).
		Count(&count).Error
	return count, err
}
