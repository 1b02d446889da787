package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/handler/dto"
	apperrors "github.com/aleksacoach93b/wellness-monitor-sub000/internal/pkg/errors"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service"
)

// ResponseHandler обрабатывает отправку и чтение ответов на опросы
type ResponseHandler struct {
	responseService *service.ResponseService
}

// NewResponseHandler создает новый обработчик ответов
func NewResponseHandler(responseService *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseService: responseService}
}

// SubmitResponse принимает заполненный опрос.
// Повторная отправка тем же игроком в тот же день заменяет предыдущий ответ.
// POST /api/surveys/:id/responses
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(string)

	var req dto.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.SubmitInput{
		SurveyID:   surveyID,
		PlayerID:   req.PlayerID,
		PlayerName: req.PlayerName,
		Answers:    make([]service.AnswerInput, 0, len(req.Answers)),
	}
	for _, a := range req.Answers {
		input.Answers = append(input.Answers, service.AnswerInput{
			QuestionID: a.QuestionID,
			Value:      a.Value,
		})
	}

	response, err := h.responseService.Submit(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponseDTO(response))
}

// GetTodayResponse возвращает сегодняшний ответ игрока для предзаполнения формы
// GET /api/surveys/:id/responses/today?playerId=...
func (h *ResponseHandler) GetTodayResponse(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(string)
	playerID := c.Query("playerId")
	if playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId query parameter is required"})
		return
	}
	if _, err := uuid.Parse(playerID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid playerId"})
		return
	}

	response, err := h.responseService.GetTodayResponse(surveyID, playerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no response today"})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponseDTO(response))
}

// ListResponses возвращает все ответы опроса (админ)
// GET /api/surveys/:id/responses
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(string)

	responses, err := h.responseService.ListBySurvey(surveyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := make([]dto.ResponseDTO, 0, len(responses))
	for i := range responses {
		result = append(result, dto.NewResponseDTO(&responses[i]))
	}
	c.JSON(http.StatusOK, gin.H{"responses": result, "total": len(result)})
}
