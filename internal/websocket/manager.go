package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Event — сообщение живого фида в формате {type, data}
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Manager — фасад WebSocket-подсистемы: апгрейд соединений и рассылка событий
type Manager struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewManager создает новый менеджер поверх хаба
func NewManager(hub *Hub) *Manager {
	return &Manager{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Живой фид только для чтения и не несет чувствительных данных,
			// cross-origin дашборды допустимы
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection апгрейдит HTTP-запрос до WebSocket и регистрирует клиента
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade failed: %w", err)
	}

	client := &Client{
		hub:  m.hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	select {
	case m.hub.register <- client:
	case <-m.hub.done:
		conn.Close()
		return fmt.Errorf("websocket hub is shut down")
	}

	go client.writePump()
	go client.readPump()
	return nil
}

// BroadcastEvent сериализует событие и рассылает его всем клиентам
func (m *Manager) BroadcastEvent(eventType string, payload interface{}) error {
	message, err := json.Marshal(Event{Type: eventType, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal event %q: %w", eventType, err)
	}
	m.hub.Broadcast(message)
	log.Printf("[WebSocketManager] Событие %q разослано", eventType)
	return nil
}
