package dto

import (
	"time"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
)

// QuestionRequest — один вопрос в запросе создания/обновления опроса
type QuestionRequest struct {
	Text     string   `json:"text" binding:"required"`
	Type     string   `json:"type" binding:"required"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
	Order    int      `json:"order"`
}

// CreateSurveyRequest — запрос создания опроса
type CreateSurveyRequest struct {
	Title          string            `json:"title" binding:"required"`
	Description    string            `json:"description"`
	IsActive       bool              `json:"isActive"`
	IsRecurring    bool              `json:"isRecurring"`
	StartDate      *time.Time        `json:"startDate"`
	EndDate        *time.Time        `json:"endDate"`
	DailyStartTime string            `json:"dailyStartTime"`
	DailyEndTime   string            `json:"dailyEndTime"`
	Questions      []QuestionRequest `json:"questions"`
}

// UpdateSurveyRequest — запрос обновления опроса; вопросы заменяются целиком
type UpdateSurveyRequest = CreateSurveyRequest

// SetActiveRequest — запрос переключения активности
type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// QuestionResponse — вопрос в ответе API
type QuestionResponse struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Order    int      `json:"order"`
}

// SurveyResponse — опрос в ответе API
type SurveyResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	IsActive       bool               `json:"isActive"`
	IsRecurring    bool               `json:"isRecurring"`
	StartDate      *time.Time         `json:"startDate,omitempty"`
	EndDate        *time.Time         `json:"endDate,omitempty"`
	DailyStartTime string             `json:"dailyStartTime,omitempty"`
	DailyEndTime   string             `json:"dailyEndTime,omitempty"`
	Questions      []QuestionResponse `json:"questions,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// SurveyListResponse — страница опросов
type SurveyListResponse struct {
	Surveys []SurveyResponse `json:"surveys"`
	Total   int64            `json:"total"`
}

// ToSurveyEntity преобразует запрос в доменную сущность
func (r *CreateSurveyRequest) ToSurveyEntity() *entity.Survey {
	survey := &entity.Survey{
		Title:          r.Title,
		Description:    r.Description,
		IsActive:       r.IsActive,
		IsRecurring:    r.IsRecurring,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		DailyStartTime: r.DailyStartTime,
		DailyEndTime:   r.DailyEndTime,
	}
	survey.Questions = r.ToQuestionEntities()
	return survey
}

// ToQuestionEntities преобразует вопросы запроса в доменные сущности
func (r *CreateSurveyRequest) ToQuestionEntities() []entity.Question {
	questions := make([]entity.Question, 0, len(r.Questions))
	for i, q := range r.Questions {
		order := q.Order
		if order == 0 {
			order = i
		}
		questions = append(questions, entity.Question{
			Text:     q.Text,
			Type:     q.Type,
			Options:  entity.StringArray(q.Options),
			Required: q.Required,
			Order:    order,
		})
	}
	return questions
}

// NewSurveyResponse собирает DTO из доменной сущности
func NewSurveyResponse(survey *entity.Survey) SurveyResponse {
	resp := SurveyResponse{
		ID:             survey.ID,
		Title:          survey.Title,
		Description:    survey.Description,
		IsActive:       survey.IsActive,
		IsRecurring:    survey.IsRecurring,
		StartDate:      survey.StartDate,
		EndDate:        survey.EndDate,
		DailyStartTime: survey.DailyStartTime,
		DailyEndTime:   survey.DailyEndTime,
		CreatedAt:      survey.CreatedAt,
	}
	for _, q := range survey.Questions {
		resp.Questions = append(resp.Questions, QuestionResponse{
			ID:       q.ID,
			Text:     q.Text,
			Type:     q.Type,
			Options:  []string(q.Options),
			Required: q.Required,
			Order:    q.Order,
		})
	}
	return resp
}
