package service

import (
	"fmt"
	"log"
	"time"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/repository"
)

// ScheduleStatus описывает состояние расписания опроса в конкретный момент
type ScheduleStatus struct {
	Active           bool       `json:"active"`
	NextActivation   *time.Time `json:"nextActivation,omitempty"`
	NextDeactivation *time.Time `json:"nextDeactivation,omitempty"`
	StatusMessage    string     `json:"statusMessage"`
}

// ScheduleService вычисляет открыт ли опрос в данный момент.
//
// Вся дневная математика (границы суток, окна HH:MM) выполняется в одной
// референсной таймзоне независимо от того, где физически находятся сервер
// и клиент. Иначе инвариант "один ответ в день" расползается между
// деплойментами.
type ScheduleService struct {
	loc *time.Location
}

// NewScheduleService создает новый сервис расписания для заданной таймзоны
func NewScheduleService(timezone string) (*ScheduleService, error) {
	if timezone == "" {
		timezone = "Europe/Belgrade"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", timezone, err)
	}
	return &ScheduleService{loc: loc}, nil
}

// Location возвращает референсную таймзону
func (s *ScheduleService) Location() *time.Location {
	return s.loc
}

// DayWindow возвращает границы суток [полночь, полночь+1д), в которые попадает t
func (s *ScheduleService) DayWindow(t time.Time) repository.TimeWindow {
	local := t.In(s.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return repository.TimeWindow{
		From: midnight,
		To:   midnight.AddDate(0, 0, 1),
	}
}

// Evaluate вычисляет состояние расписания опроса в момент now.
//
// Для нерекуррентных опросов состояние — это просто флаг is_active.
// Для рекуррентных: границы start_date/end_date, затем дневное окно
// [daily_start_time, daily_end_time], включительное с обеих сторон с
// точностью до минуты. Битая конфигурация (рекуррентный опрос без валидных
// времен) трактуется как закрытый опрос, а не как ошибка.
func (s *ScheduleService) Evaluate(survey *entity.Survey, now time.Time) ScheduleStatus {
	if !survey.IsRecurring {
		if survey.IsActive {
			return ScheduleStatus{Active: true, StatusMessage: "active"}
		}
		return ScheduleStatus{Active: false, StatusMessage: "inactive"}
	}

	localNow := now.In(s.loc)

	if survey.StartDate != nil && localNow.Before(survey.StartDate.In(s.loc)) {
		start := survey.StartDate.In(s.loc)
		return ScheduleStatus{
			Active:         false,
			NextActivation: &start,
			StatusMessage:  fmt.Sprintf("inactive - opens in %s", formatCountdown(start.Sub(localNow))),
		}
	}
	if survey.EndDate != nil && localNow.After(survey.EndDate.In(s.loc)) {
		return ScheduleStatus{Active: false, StatusMessage: "inactive - survey ended"}
	}

	startMin, okStart := parseClock(survey.DailyStartTime)
	endMin, okEnd := parseClock(survey.DailyEndTime)
	if !okStart || !okEnd {
		log.Printf("[ScheduleService] Рекуррентный опрос %s с некорректным дневным окном (%q - %q), трактую как закрытый",
			survey.ID, survey.DailyStartTime, survey.DailyEndTime)
		return ScheduleStatus{Active: false, StatusMessage: "inactive - schedule misconfigured"}
	}

	nowMin := localNow.Hour()*60 + localNow.Minute()
	todayStart := s.clockOn(localNow, startMin)
	todayEnd := s.clockOn(localNow, endMin)

	switch {
	case nowMin >= startMin && nowMin <= endMin:
		return ScheduleStatus{
			Active:           true,
			NextDeactivation: &todayEnd,
			StatusMessage:    fmt.Sprintf("active - closes in %s", formatCountdown(todayEnd.Sub(localNow))),
		}
	case nowMin < startMin:
		return ScheduleStatus{
			Active:         false,
			NextActivation: &todayStart,
			StatusMessage:  fmt.Sprintf("inactive - opens in %s", formatCountdown(todayStart.Sub(localNow))),
		}
	default:
		tomorrowStart := todayStart.AddDate(0, 0, 1)
		return ScheduleStatus{
			Active:         false,
			NextActivation: &tomorrowStart,
			StatusMessage:  fmt.Sprintf("inactive - opens in %s", formatCountdown(tomorrowStart.Sub(localNow))),
		}
	}
}

// clockOn возвращает момент "минута minutes в сутках дня day" в референсной зоне
func (s *ScheduleService) clockOn(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, s.loc)
}

// parseClock разбирает строку "HH:MM" в минуту суток.
// Окна с dailyStartTime > dailyEndTime (через полночь) не поддерживаются:
// сравнение по минуте суток их не выражает.
func parseClock(value string) (int, bool) {
	if len(value) != 5 {
		return 0, false
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// formatCountdown форматирует длительность до перехода: "3h 15m", "45m" или "now".
// Округление вниз до целой минуты.
func formatCountdown(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	totalMinutes := int(d.Minutes())
	if totalMinutes == 0 {
		return "now"
	}
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
