package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/repository"
	apperrors "github.com/aleksacoach93b/wellness-monitor-sub000/internal/pkg/errors"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service/bodymap"
)

// Broadcaster рассылает события подключенным WebSocket-клиентам
type Broadcaster interface {
	BroadcastEvent(eventType string, payload interface{}) error
}

// Alerter уведомляет тренерский штаб о тревожных значениях
type Alerter interface {
	NotifyHighIntensity(surveyTitle, playerName string, areas map[string]int)
}

// AnswerInput — один ответ на вопрос в запросе отправки
type AnswerInput struct {
	QuestionID string
	Value      string
}

// SubmitInput — входные данные операции отправки ответа
type SubmitInput struct {
	SurveyID   string
	PlayerID   *string
	PlayerName string
	Answers    []AnswerInput
}

// ResponseService реализует жизненный цикл ответов на опрос
type ResponseService struct {
	responseRepo repository.ResponseRepository
	surveyRepo   repository.SurveyRepository
	playerRepo   repository.PlayerRepository
	cacheRepo    repository.CacheRepository
	schedule     *ScheduleService
	broadcaster  Broadcaster
	alerter      Alerter
	alertMin     int
}

// NewResponseService создает новый сервис ответов
func NewResponseService(
	responseRepo repository.ResponseRepository,
	surveyRepo repository.SurveyRepository,
	playerRepo repository.PlayerRepository,
	cacheRepo repository.CacheRepository,
	schedule *ScheduleService,
	broadcaster Broadcaster,
	alerter Alerter,
	alertMin int,
) *ResponseService {
	if alertMin <= 0 {
		alertMin = 8
	}
	return &ResponseService{
		responseRepo: responseRepo,
		surveyRepo:   surveyRepo,
		playerRepo:   playerRepo,
		cacheRepo:    cacheRepo,
		schedule:     schedule,
		broadcaster:  broadcaster,
		alerter:      alerter,
		alertMin:     alertMin,
	}
}

// Submit заменяет дневной ответ игрока на опрос.
//
// Повторная отправка в тот же день затирает предыдущую: после любого числа
// вызовов за день у пары (опрос, игрок) остается ровно один Response с
// ответами из последнего вызова. Анонимные отправки (без PlayerID)
// не дедуплицируются.
func (s *ResponseService) Submit(input SubmitInput) (*entity.Response, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	survey, err := s.surveyRepo.GetByID(input.SurveyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: survey not found or inactive", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load survey %s: %w", input.SurveyID, err)
	}
	if !survey.IsActive {
		return nil, fmt.Errorf("%w: survey not found or inactive", apperrors.ErrNotFound)
	}

	playerName := input.PlayerName
	if input.PlayerID != nil && playerName == "" {
		if player, perr := s.playerRepo.GetByID(*input.PlayerID); perr == nil {
			playerName = player.FullName()
		}
	}

	now := time.Now()
	response := &entity.Response{
		SurveyID:    input.SurveyID,
		PlayerID:    input.PlayerID,
		PlayerName:  playerName,
		SubmittedAt: now,
		Answers:     make([]entity.Answer, 0, len(input.Answers)),
	}
	for _, a := range input.Answers {
		response.Answers = append(response.Answers, entity.Answer{
			QuestionID: a.QuestionID,
			Value:      a.Value,
		})
	}

	var window *repository.TimeWindow
	if input.PlayerID != nil {
		w := s.schedule.DayWindow(now)
		window = &w
	}

	if err := s.responseRepo.ReplaceDailyResponse(response, window); err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	s.afterSubmit(survey, response)
	return response, nil
}

// GetTodayResponse возвращает сегодняшний ответ игрока на опрос, если он есть
func (s *ResponseService) GetTodayResponse(surveyID, playerID string) (*entity.Response, error) {
	window := s.schedule.DayWindow(time.Now())
	return s.responseRepo.GetLatestInWindow(surveyID, playerID, window)
}

// ListBySurvey возвращает все ответы опроса
func (s *ResponseService) ListBySurvey(surveyID string) ([]entity.Response, error) {
	return s.responseRepo.GetBySurveyID(surveyID)
}

// CountBySurvey возвращает количество ответов опроса
func (s *ResponseService) CountBySurvey(surveyID string) (int64, error) {
	return s.responseRepo.CountBySurveyID(surveyID)
}

// afterSubmit выполняет побочные эффекты успешной отправки: сброс кеша
// экспорта, live-событие и почтовое оповещение. Ни один из них не влияет
// на результат самой отправки.
func (s *ResponseService) afterSubmit(survey *entity.Survey, response *entity.Response) {
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(exportCacheKey(survey.ID)); err != nil {
			log.Printf("[ResponseService] Не удалось сбросить кеш экспорта для опроса %s: %v", survey.ID, err)
		}
	}

	if s.broadcaster != nil {
		event := map[string]interface{}{
			"survey_id":    survey.ID,
			"response_id":  response.ID,
			"player_name":  response.PlayerName,
			"submitted_at": response.SubmittedAt,
		}
		if err := s.broadcaster.BroadcastEvent("response:submitted", event); err != nil {
			log.Printf("[ResponseService] Не удалось разослать событие отправки: %v", err)
		}
	}

	if s.alerter != nil {
		if hot := s.collectHighIntensityAreas(response); len(hot) > 0 {
			go s.alerter.NotifyHighIntensity(survey.Title, response.PlayerName, hot)
		}
	}
}

// collectHighIntensityAreas собирает области body map с интенсивностью не ниже порога
func (s *ResponseService) collectHighIntensityAreas(response *entity.Response) map[string]int {
	hot := make(map[string]int)
	for _, answer := range response.Answers {
		value := bodymap.Decode(answer.Value)
		if !value.IsMap() {
			continue
		}
		for areaID, intensity := range value.Areas {
			if intensity >= s.alertMin {
				hot[areaID] = intensity
			}
		}
	}
	return hot
}

// validateSubmitInput проверяет форму входных данных отправки
func validateSubmitInput(input SubmitInput) error {
	var fields []FieldError
	if input.SurveyID == "" {
		fields = append(fields, FieldError{Field: "surveyId", Message: "is required"})
	}
	if input.PlayerID != nil && *input.PlayerID == "" {
		fields = append(fields, FieldError{Field: "playerId", Message: "must not be empty when present"})
	}
	if len(input.Answers) == 0 {
		fields = append(fields, FieldError{Field: "answers", Message: "must contain at least one answer"})
	}
	for i, a := range input.Answers {
		if a.QuestionID == "" {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("answers[%d].questionId", i),
				Message: "is required",
			})
		}
	}
	if len(fields) > 0 {
		return newValidationError(fields...)
	}
	return nil
}
