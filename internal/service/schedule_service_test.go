package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
)

func timePtr(t time.Time) *time.Time { return &t }

// recurringSurvey строит рекуррентный опрос с окном 08:00-20:00,
// стартовавший вчера и заканчивающийся через месяц
func recurringSurvey(loc *time.Location, now time.Time) *entity.Survey {
	return &entity.Survey{
		ID:             "survey-1",
		Title:          "Morning Wellness",
		IsActive:       true,
		IsRecurring:    true,
		StartDate:      timePtr(now.AddDate(0, 0, -1)),
		EndDate:        timePtr(now.AddDate(0, 1, 0)),
		DailyStartTime: "08:00",
		DailyEndTime:   "20:00",
	}
}

func TestScheduleService_Evaluate_DailyWindow(t *testing.T) {
	schedule := newTestScheduleService(t)
	loc := schedule.Location()
	day := time.Date(2025, 6, 10, 12, 0, 0, 0, loc)
	survey := recurringSurvey(loc, day)

	tests := []struct {
		name           string
		now            time.Time
		wantActive     bool
		wantNextActiv  *time.Time
		wantNextDeact  *time.Time
	}{
		{
			name:          "за минуту до открытия",
			now:           time.Date(2025, 6, 10, 7, 59, 0, 0, loc),
			wantActive:    false,
			wantNextActiv: timePtr(time.Date(2025, 6, 10, 8, 0, 0, 0, loc)),
		},
		{
			name:          "ровно в момент открытия",
			now:           time.Date(2025, 6, 10, 8, 0, 0, 0, loc),
			wantActive:    true,
			wantNextDeact: timePtr(time.Date(2025, 6, 10, 20, 0, 0, 0, loc)),
		},
		{
			name:          "граница закрытия включительна",
			now:           time.Date(2025, 6, 10, 20, 0, 0, 0, loc),
			wantActive:    true,
			wantNextDeact: timePtr(time.Date(2025, 6, 10, 20, 0, 0, 0, loc)),
		},
		{
			name:          "минута после закрытия",
			now:           time.Date(2025, 6, 10, 20, 1, 0, 0, loc),
			wantActive:    false,
			wantNextActiv: timePtr(time.Date(2025, 6, 11, 8, 0, 0, 0, loc)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := schedule.Evaluate(survey, tt.now)

			assert.Equal(t, tt.wantActive, status.Active)
			if tt.wantNextActiv != nil {
				require.NotNil(t, status.NextActivation)
				assert.True(t, tt.wantNextActiv.Equal(*status.NextActivation),
					"ожидали %v, получили %v", tt.wantNextActiv, status.NextActivation)
			}
			if tt.wantNextDeact != nil {
				require.NotNil(t, status.NextDeactivation)
				assert.True(t, tt.wantNextDeact.Equal(*status.NextDeactivation))
			}
			assert.NotEmpty(t, status.StatusMessage)
		})
	}
}

func TestScheduleService_Evaluate_NonRecurring(t *testing.T) {
	schedule := newTestScheduleService(t)
	now := time.Now()

	active := schedule.Evaluate(&entity.Survey{IsActive: true}, now)
	assert.True(t, active.Active)
	assert.Equal(t, "active", active.StatusMessage)

	inactive := schedule.Evaluate(&entity.Survey{IsActive: false}, now)
	assert.False(t, inactive.Active)
	assert.Equal(t, "inactive", inactive.StatusMessage)
}

func TestScheduleService_Evaluate_BeforeStartDate(t *testing.T) {
	schedule := newTestScheduleService(t)
	loc := schedule.Location()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, loc)

	start := time.Date(2025, 6, 15, 0, 0, 0, 0, loc)
	survey := &entity.Survey{
		IsRecurring:    true,
		StartDate:      timePtr(start),
		DailyStartTime: "08:00",
		DailyEndTime:   "20:00",
	}

	status := schedule.Evaluate(survey, now)

	assert.False(t, status.Active)
	require.NotNil(t, status.NextActivation)
	assert.True(t, start.Equal(*status.NextActivation))
	assert.Contains(t, status.StatusMessage, "opens in")
}

func TestScheduleService_Evaluate_AfterEndDate(t *testing.T) {
	schedule := newTestScheduleService(t)
	loc := schedule.Location()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, loc)

	survey := &entity.Survey{
		IsRecurring:    true,
		EndDate:        timePtr(time.Date(2025, 6, 1, 0, 0, 0, 0, loc)),
		DailyStartTime: "08:00",
		DailyEndTime:   "20:00",
	}

	status := schedule.Evaluate(survey, now)

	assert.False(t, status.Active)
	assert.Nil(t, status.NextActivation)
	assert.Equal(t, "inactive - survey ended", status.StatusMessage)
}

func TestScheduleService_Evaluate_MalformedWindowFailsClosed(t *testing.T) {
	schedule := newTestScheduleService(t)
	loc := schedule.Location()
	// Полдень: с валидным окном опрос был бы открыт
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, loc)

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"отсутствуют оба времени", "", ""},
		{"отсутствует время окончания", "08:00", ""},
		{"мусор вместо времени", "morning", "20:00"},
		{"неполный формат", "8:00", "20:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			survey := &entity.Survey{
				IsRecurring:    true,
				DailyStartTime: tt.start,
				DailyEndTime:   tt.end,
			}

			status := schedule.Evaluate(survey, now)

			assert.False(t, status.Active, "битая конфигурация должна трактоваться как закрытый опрос")
			assert.Equal(t, "inactive - schedule misconfigured", status.StatusMessage)
		})
	}
}

func TestScheduleService_Evaluate_EqualStartEndIsOneMinuteWindow(t *testing.T) {
	schedule := newTestScheduleService(t)
	loc := schedule.Location()
	survey := &entity.Survey{
		IsRecurring:    true,
		DailyStartTime: "12:00",
		DailyEndTime:   "12:00",
	}

	within := schedule.Evaluate(survey, time.Date(2025, 6, 10, 12, 0, 30, 0, loc))
	assert.True(t, within.Active)

	after := schedule.Evaluate(survey, time.Date(2025, 6, 10, 12, 1, 0, 0, loc))
	assert.False(t, after.Active)
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "now"},
		{-5 * time.Minute, "now"},
		{30 * time.Second, "now"},
		{time.Minute, "1m"},
		{45 * time.Minute, "45m"},
		{time.Hour, "1h 0m"},
		{3*time.Hour + 15*time.Minute, "3h 15m"},
		// Округление вниз: 59.5 минут — это все еще 59m
		{59*time.Minute + 30*time.Second, "59m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCountdown(tt.d), "для %v", tt.d)
	}
}

func TestScheduleService_DayWindow(t *testing.T) {
	schedule := newTestScheduleService(t)
	loc := schedule.Location()

	window := schedule.DayWindow(time.Date(2025, 6, 10, 23, 45, 0, 0, loc))

	assert.True(t, window.From.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, loc)))
	assert.True(t, window.To.Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, loc)))
	assert.True(t, window.Contains(time.Date(2025, 6, 10, 0, 0, 0, 0, loc)))
	assert.False(t, window.Contains(time.Date(2025, 6, 11, 0, 0, 0, 0, loc)))
}
