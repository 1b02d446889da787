package repository

import (
	"time"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
)

// TimeWindow — полуоткрытый интервал [From, To), в котором действует
// инвариант "не более одного ответа игрока в день"
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// Contains проверяет попадание момента в окно
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// ResponseRepository определяет методы для работы с ответами на опросы
type ResponseRepository interface {
	// ReplaceDailyResponse сохраняет новый Response вместе с его Answers.
	// При window != nil предварительно удаляются все существующие ответы
	// той же пары (surveyID, playerID) с submitted_at внутри окна — сначала
	// их Answers, затем сами Response. Весь delete-then-insert выполняется
	// одной транзакцией под advisory-локом, частичное применение снаружи
	// не наблюдаемо.
	ReplaceDailyResponse(response *entity.Response, window *TimeWindow) error

	// GetBySurveyID возвращает все ответы опроса с Answers,
	// детерминированно отсортированные (submitted_at, id)
	GetBySurveyID(surveyID string) ([]entity.Response, error)

	// GetLatestInWindow возвращает последний ответ пары (surveyID, playerID)
	// внутри окна, вместе с Answers
	GetLatestInWindow(surveyID, playerID string, window TimeWindow) (*entity.Response, error)

	CountBySurveyID(surveyID string) (int64, error)
}
