package dto

import (
	"time"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
)

// AnswerRequest — один ответ на вопрос в запросе отправки
type AnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Value      string `json:"value"`
}

// SubmitResponseRequest — запрос отправки заполненного опроса
type SubmitResponseRequest struct {
	PlayerID   *string         `json:"playerId"`
	PlayerName string          `json:"playerName"`
	Answers    []AnswerRequest `json:"answers"`
}

// AnswerResponse — ответ на вопрос в ответе API
type AnswerResponse struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// ResponseDTO — отправленный ответ на опрос в ответе API
type ResponseDTO struct {
	ID          string           `json:"id"`
	SurveyID    string           `json:"surveyId"`
	PlayerID    *string          `json:"playerId,omitempty"`
	PlayerName  string           `json:"playerName,omitempty"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Answers     []AnswerResponse `json:"answers"`
}

// NewResponseDTO собирает DTO из доменной сущности
func NewResponseDTO(response *entity.Response) ResponseDTO {
	d := ResponseDTO{
		ID:          response.ID,
		SurveyID:    response.SurveyID,
		PlayerID:    response.PlayerID,
		PlayerName:  response.PlayerName,
		SubmittedAt: response.SubmittedAt,
		Answers:     make([]AnswerResponse, 0, len(response.Answers)),
	}
	for _, a := range response.Answers {
		d.Answers = append(d.Answers, AnswerResponse{
			QuestionID: a.QuestionID,
			Value:      a.Value,
		})
	}
	return d
}
