package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/repository"
	apperrors "github.com/aleksacoach93b/wellness-monitor-sub000/internal/pkg/errors"
)

// ============================================================================
// Общие моки репозиториев для тестов сервисов
// ============================================================================

// MockSurveyRepository реализует repository.SurveyRepository
type MockSurveyRepository struct {
	mock.Mock
}

func (m *MockSurveyRepository) Create(survey *entity.Survey) error {
	args := m.Called(survey)
	return args.Error(0)
}

func (m *MockSurveyRepository) GetByID(id string) (*entity.Survey, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Survey), args.Error(1)
}

func (m *MockSurveyRepository) GetWithQuestions(id string) (*entity.Survey, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Survey), args.Error(1)
}

func (m *MockSurveyRepository) List(filters repository.SurveyFilters, limit, offset int) ([]entity.Survey, int64, error) {
	args := m.Called(filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Survey), args.Get(1).(int64), args.Error(2)
}

func (m *MockSurveyRepository) Update(survey *entity.Survey) error {
	args := m.Called(survey)
	return args.Error(0)
}

func (m *MockSurveyRepository) SetActive(surveyID string, active bool) error {
	args := m.Called(surveyID, active)
	return args.Error(0)
}

func (m *MockSurveyRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockResponseRepository реализует repository.ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) ReplaceDailyResponse(response *entity.Response, window *repository.TimeWindow) error {
	args := m.Called(response, window)
	return args.Error(0)
}

func (m *MockResponseRepository) GetBySurveyID(surveyID string) ([]entity.Response, error) {
	args := m.Called(surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Response), args.Error(1)
}

func (m *MockResponseRepository) GetLatestInWindow(surveyID, playerID string, window repository.TimeWindow) (*entity.Response, error) {
	args := m.Called(surveyID, playerID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Response), args.Error(1)
}

func (m *MockResponseRepository) CountBySurveyID(surveyID string) (int64, error) {
	args := m.Called(surveyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlayerRepository реализует repository.PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Create(player *entity.Player) error {
	args := m.Called(player)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetByID(id string) (*entity.Player, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Player), args.Error(1)
}

func (m *MockPlayerRepository) List(activeOnly bool) ([]entity.Player, error) {
	args := m.Called(activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Player), args.Error(1)
}

func (m *MockPlayerRepository) Update(player *entity.Player) error {
	args := m.Called(player)
	return args.Error(0)
}

func (m *MockPlayerRepository) SetActive(playerID string, active bool) error {
	args := m.Called(playerID, active)
	return args.Error(0)
}

func (m *MockPlayerRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}

// ============================================================================
// Тесты для ResponseService
// ============================================================================

func strPtr(s string) *string { return &s }

func newTestScheduleService(t *testing.T) *ScheduleService {
	t.Helper()
	schedule, err := NewScheduleService("Europe/Belgrade")
	require.NoError(t, err)
	return schedule
}

func newTestResponseService(t *testing.T, responseRepo *MockResponseRepository, surveyRepo *MockSurveyRepository, playerRepo *MockPlayerRepository) *ResponseService {
	t.Helper()
	return NewResponseService(responseRepo, surveyRepo, playerRepo, nil, newTestScheduleService(t), nil, nil, 8)
}

func TestResponseService_Submit_Success(t *testing.T) {
	// Arrange
	mockSurveyRepo := new(MockSurveyRepository)
	mockResponseRepo := new(MockResponseRepository)
	mockPlayerRepo := new(MockPlayerRepository)

	survey := &entity.Survey{ID: "survey-1", Title: "Morning Wellness", IsActive: true}
	mockSurveyRepo.On("GetByID", "survey-1").Return(survey, nil)
	mockResponseRepo.On("ReplaceDailyResponse", mock.AnythingOfType("*entity.Response"), mock.AnythingOfType("*repository.TimeWindow")).Return(nil)

	svc := newTestResponseService(t, mockResponseRepo, mockSurveyRepo, mockPlayerRepo)

	// Act
	response, err := svc.Submit(SubmitInput{
		SurveyID:   "survey-1",
		PlayerID:   strPtr("player-1"),
		PlayerName: "Ivan Petrov",
		Answers: []AnswerInput{
			{QuestionID: "q-1", Value: "7"},
			{QuestionID: "q-2", Value: "Slept well"},
		},
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, "survey-1", response.SurveyID)
	assert.Equal(t, "Ivan Petrov", response.PlayerName)
	assert.Len(t, response.Answers, 2)
	mockResponseRepo.AssertExpectations(t)

	// Окно дедупликации должно быть передано для именованного игрока
	call := mockResponseRepo.Calls[0]
	window := call.Arguments.Get(1).(*repository.TimeWindow)
	require.NotNil(t, window)
	assert.True(t, window.Contains(response.SubmittedAt))
	assert.True(t, window.From.Before(window.To))
}

func TestResponseService_Submit_AnonymousSkipsDailyWindow(t *testing.T) {
	// Arrange
	mockSurveyRepo := new(MockSurveyRepository)
	mockResponseRepo := new(MockResponseRepository)
	mockPlayerRepo := new(MockPlayerRepository)

	survey := &entity.Survey{ID: "survey-1", IsActive: true}
	mockSurveyRepo.On("GetByID", "survey-1").Return(survey, nil)
	// Анонимная отправка не дедуплицируется: окно должно быть nil
	mockResponseRepo.On("ReplaceDailyResponse", mock.AnythingOfType("*entity.Response"), (*repository.TimeWindow)(nil)).Return(nil)

	svc := newTestResponseService(t, mockResponseRepo, mockSurveyRepo, mockPlayerRepo)

	// Act
	_, err := svc.Submit(SubmitInput{
		SurveyID: "survey-1",
		Answers:  []AnswerInput{{QuestionID: "q-1", Value: "ok"}},
	})

	// Assert
	require.NoError(t, err)
	mockResponseRepo.AssertExpectations(t)
}

func TestResponseService_Submit_SurveyNotFound(t *testing.T) {
	// Arrange
	mockSurveyRepo := new(MockSurveyRepository)
	mockResponseRepo := new(MockResponseRepository)
	mockPlayerRepo := new(MockPlayerRepository)

	mockSurveyRepo.On("GetByID", "missing").Return(nil, apperrors.ErrNotFound)

	svc := newTestResponseService(t, mockResponseRepo, mockSurveyRepo, mockPlayerRepo)

	// Act
	response, err := svc.Submit(SubmitInput{
		SurveyID: "missing",
		Answers:  []AnswerInput{{QuestionID: "q-1", Value: "1"}},
	})

	// Assert
	assert.Nil(t, response)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockResponseRepo.AssertNotCalled(t, "ReplaceDailyResponse")
}

func TestResponseService_Submit_InactiveSurvey(t *testing.T) {
	// Arrange
	mockSurveyRepo := new(MockSurveyRepository)
	mockResponseRepo := new(MockResponseRepository)
	mockPlayerRepo := new(MockPlayerRepository)

	survey := &entity.Survey{ID: "survey-1", IsActive: false}
	mockSurveyRepo.On("GetByID", "survey-1").Return(survey, nil)

	svc := newTestResponseService(t, mockResponseRepo, mockSurveyRepo, mockPlayerRepo)

	// Act
	response, err := svc.Submit(SubmitInput{
		SurveyID: "survey-1",
		Answers:  []AnswerInput{{QuestionID: "q-1", Value: "1"}},
	})

	// Assert
	assert.Nil(t, response)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockResponseRepo.AssertNotCalled(t, "ReplaceDailyResponse")
}

func TestResponseService_Submit_ValidationErrors(t *testing.T) {
	// Arrange
	mockSurveyRepo := new(MockSurveyRepository)
	mockResponseRepo := new(MockResponseRepository)
	mockPlayerRepo := new(MockPlayerRepository)

	svc := newTestResponseService(t, mockResponseRepo, mockSurveyRepo, mockPlayerRepo)

	// Act: пустой surveyId и ответ без questionId
	response, err := svc.Submit(SubmitInput{
		SurveyID: "",
		Answers:  []AnswerInput{{QuestionID: "", Value: "1"}},
	})

	// Assert
	assert.Nil(t, response)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "surveyId", verr.Fields[0].Field)
	assert.Equal(t, "answers[0].questionId", verr.Fields[1].Field)
	mockSurveyRepo.AssertNotCalled(t, "GetByID")
}

func TestResponseService_Submit_EmptyAnswers(t *testing.T) {
	// Arrange
	mockSurveyRepo := new(MockSurveyRepository)
	mockResponseRepo := new(MockResponseRepository)
	mockPlayerRepo := new(MockPlayerRepository)

	svc := newTestResponseService(t, mockResponseRepo, mockSurveyRepo, mockPlayerRepo)

	// Act
	response, err := svc.Submit(SubmitInput{SurveyID: "survey-1"})

	// Assert
	assert.Nil(t, response)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "answers", verr.Fields[0].Field)
}

func TestResponseService_Submit_PersistenceFailure(t *testing.T) {
	// Arrange
	mockSurveyRepo := new(MockSurveyRepository)
	mockResponseRepo := new(MockResponseRepository)
	mockPlayerRepo := new(MockPlayerRepository)

	survey := &entity.Survey{ID: "survey-1", IsActive: true}
	mockSurveyRepo.On("GetByID", "survey-1").Return(survey, nil)
	// Имя не передано: сервис попробует найти игрока в ростере
	mockPlayerRepo.On("GetByID", "player-1").Return(nil, apperrors.ErrNotFound)
	mockResponseRepo.On("ReplaceDailyResponse", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	svc := newTestResponseService(t, mockResponseRepo, mockSurveyRepo, mockPlayerRepo)

	// Act
	response, err := svc.Submit(SubmitInput{
		SurveyID: "survey-1",
		PlayerID: strPtr("player-1"),
		Answers:  []AnswerInput{{QuestionID: "q-1", Value: "1"}},
	})

	// Assert
	assert.Nil(t, response)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store response")
}

func TestResponseService_Submit_ResolvesPlayerName(t *testing.T) {
	// Arrange
	mockSurveyRepo := new(MockSurveyRepository)
	mockResponseRepo := new(MockResponseRepository)
	mockPlayerRepo := new(MockPlayerRepository)

	survey := &entity.Survey{ID: "survey-1", IsActive: true}
	player := &entity.Player{ID: "player-1", FirstName: "Ivan", LastName: "Petrov"}
	mockSurveyRepo.On("GetByID", "survey-1").Return(survey, nil)
	mockPlayerRepo.On("GetByID", "player-1").Return(player, nil)
	mockResponseRepo.On("ReplaceDailyResponse", mock.Anything, mock.Anything).Return(nil)

	svc := newTestResponseService(t, mockResponseRepo, mockSurveyRepo, mockPlayerRepo)

	// Act: имя не передано, должно подтянуться из ростера
	response, err := svc.Submit(SubmitInput{
		SurveyID: "survey-1",
		PlayerID: strPtr("player-1"),
		Answers:  []AnswerInput{{QuestionID: "q-1", Value: "1"}},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", response.PlayerName)
	mockPlayerRepo.AssertExpectations(t)
}
