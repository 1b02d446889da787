package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/websocket"
)

// WSHandler подключает клиентов к живому фиду отправок
type WSHandler struct {
	manager *websocket.Manager
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(manager *websocket.Manager) *WSHandler {
	return &WSHandler{manager: manager}
}

// HandleConnection апгрейдит соединение до WebSocket
// GET /ws
func (h *WSHandler) HandleConnection(c *gin.Context) {
	if err := h.manager.HandleConnection(c.Writer, c.Request); err != nil {
		// Ответ клиенту уже записан апгрейдером
		log.Printf("[WSHandler] Ошибка подключения WebSocket: %v", err)
	}
}
