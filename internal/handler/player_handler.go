package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/handler/dto"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service"
)

// PlayerHandler обрабатывает запросы ростера игроков
type PlayerHandler struct {
	playerService *service.PlayerService
}

// NewPlayerHandler создает новый обработчик игроков
func NewPlayerHandler(playerService *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// CreatePlayer добавляет игрока в ростер
// POST /api/players
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req dto.PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player := req.ToEntity()
	if err := h.playerService.Create(player); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPlayerResponse(player))
}

// GetPlayer возвращает игрока по ID
// GET /api/players/:id
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID := c.MustGet("playerID").(string)

	player, err := h.playerService.GetByID(playerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPlayerResponse(player))
}

// ListPlayers возвращает ростер
// GET /api/players?active=true
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.playerService.List(c.Query("active") == "true")
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := make([]dto.PlayerResponse, 0, len(players))
	for i := range players {
		result = append(result, dto.NewPlayerResponse(&players[i]))
	}
	c.JSON(http.StatusOK, gin.H{"players": result, "total": len(result)})
}

// UpdatePlayer обновляет данные игрока
// PUT /api/players/:id
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	playerID := c.MustGet("playerID").(string)

	var req dto.PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player := req.ToEntity()
	player.ID = playerID
	if err := h.playerService.Update(player); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPlayerResponse(player))
}

// SetPlayerActive переключает флаг активности игрока.
// Вывод из действующего ростера без потери истории ответов.
// PATCH /api/players/:id/active
func (h *PlayerHandler) SetPlayerActive(c *gin.Context) {
	playerID := c.MustGet("playerID").(string)

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.playerService.SetActive(playerID, req.IsActive); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": playerID, "isActive": req.IsActive})
}

// DeletePlayer удаляет игрока из ростера.
// Его исторические ответы перестают попадать в экспорт.
// DELETE /api/players/:id
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	playerID := c.MustGet("playerID").(string)

	if err := h.playerService.Delete(playerID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
