package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/repository"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/handler/dto"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service"
)

// SurveyHandler обрабатывает запросы, связанные с опросами
type SurveyHandler struct {
	surveyService   *service.SurveyService
	scheduleService *service.ScheduleService
}

// NewSurveyHandler создает новый обработчик опросов
func NewSurveyHandler(surveyService *service.SurveyService, scheduleService *service.ScheduleService) *SurveyHandler {
	return &SurveyHandler{
		surveyService:   surveyService,
		scheduleService: scheduleService,
	}
}

// CreateSurvey обрабатывает создание нового опроса
// POST /api/surveys
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req dto.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey := req.ToSurveyEntity()
	if err := h.surveyService.Create(survey); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSurveyResponse(survey))
}

// GetSurvey возвращает опрос с вопросами
// GET /api/surveys/:id
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(string)

	survey, err := h.surveyService.GetWithQuestions(surveyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSurveyResponse(survey))
}

// ListSurveys возвращает страницу опросов
// GET /api/surveys?active=true&search=...&page=1&per_page=20
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}

	filters := repository.SurveyFilters{
		ActiveOnly: c.Query("active") == "true",
		Search:     c.Query("search"),
	}

	surveys, total, err := h.surveyService.List(filters, perPage, (page-1)*perPage)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := dto.SurveyListResponse{Total: total, Surveys: make([]dto.SurveyResponse, 0, len(surveys))}
	for i := range surveys {
		resp.Surveys = append(resp.Surveys, dto.NewSurveyResponse(&surveys[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSurvey обновляет опрос и целиком заменяет его вопросы
// PUT /api/surveys/:id
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(string)

	var req dto.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey := req.ToSurveyEntity()
	survey.ID = surveyID
	questions := survey.Questions
	survey.Questions = nil

	if err := h.surveyService.Update(survey, questions); err != nil {
		handleServiceError(c, err)
		return
	}

	updated, err := h.surveyService.GetWithQuestions(surveyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSurveyResponse(updated))
}

// SetSurveyActive переключает флаг активности опроса
// PATCH /api/surveys/:id/active
func (h *SurveyHandler) SetSurveyActive(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(string)

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.surveyService.SetActive(surveyID, req.IsActive); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": surveyID, "isActive": req.IsActive})
}

// DeleteSurvey удаляет опрос со всеми вопросами и ответами
// DELETE /api/surveys/:id
func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(string)

	if err := h.surveyService.Delete(surveyID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSurveySchedule возвращает состояние расписания опроса на текущий момент
// GET /api/surveys/:id/schedule
func (h *SurveyHandler) GetSurveySchedule(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(string)

	survey, err := h.surveyService.GetByID(surveyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := h.scheduleService.Evaluate(survey, time.Now())
	c.JSON(http.StatusOK, status)
}
