package websocket

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait — таймаут записи сообщения клиенту
	writeWait = 10 * time.Second

	// pongWait — сколько ждем pong от клиента
	pongWait = 60 * time.Second

	// pingPeriod должен быть меньше pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize ограничивает входящие сообщения; клиенты живого фида
	// ничего содержательного не присылают
	maxMessageSize = 512

	// sendBufferSize — буфер исходящих сообщений на клиента
	sendBufferSize = 64
)

// Client — одно WebSocket-подключение живого фида
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub держит подключенных клиентов и рассылает им события
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	// done закрывается при остановке хаба; после этого pump-горутины
	// не должны блокироваться на каналах регистрации
	done chan struct{}
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает регистрацию клиентов и рассылку до отмены контекста
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Printf("[WebSocketHub] Остановка хаба, отключаю %d клиентов", len(h.clients))
			close(h.done)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("[WebSocketHub] Клиент подключен, всего: %d", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[WebSocketHub] Клиент отключен, всего: %d", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Медленный клиент: буфер полон, отключаем
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Broadcast отправляет сообщение всем подключенным клиентам
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		log.Printf("[WebSocketHub] Канал рассылки переполнен, событие отброшено")
	}
}

// readPump вычитывает входящие фреймы до закрытия соединения.
// Содержимое игнорируется, но вычитывание необходимо для обработки
// pong и close фреймов.
// detach снимает клиента с хаба. После остановки хаба некому читать
// unregister, поэтому выход происходит по каналу done.
func (c *Client) detach() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.detach()
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WebSocketHub] Неожиданное закрытие соединения: %v", err)
			}
			return
		}
	}
}

// writePump пишет сообщения клиенту и поддерживает соединение пингами
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
