package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubClient(h *Hub) *Client {
	return &Client{
		hub:  h,
		send: make(chan []byte, sendBufferSize),
	}
}

func TestHub_RegisterBroadcastUnregister(t *testing.T) {
	// Arrange
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newHubClient(hub)
	hub.register <- client

	// Act
	hub.Broadcast([]byte(`{"type":"response:submitted"}`))

	// Assert
	select {
	case msg := <-client.send:
		assert.Equal(t, `{"type":"response:submitted"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("клиент не получил рассылку")
	}

	client.detach()
	// После снятия клиента его канал закрывается хабом
	select {
	case _, open := <-client.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("канал клиента не был закрыт после detach")
	}
}

func TestHub_DetachAfterShutdownDoesNotBlock(t *testing.T) {
	// Arrange
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := newHubClient(hub)
	hub.register <- client

	// Act: останавливаем хаб и дожидаемся закрытия done
	cancel()
	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("хаб не закрыл done после отмены контекста")
	}

	// Assert: у unregister больше нет читателя, detach обязан выйти сам
	finished := make(chan struct{})
	go func() {
		client.detach()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("detach завис после остановки хаба")
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	// Arrange: буфер клиента переполнен
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	client.send <- []byte("stale")
	hub.register <- client

	// Act: клиент не вычитывает буфер, рассылка не должна зависнуть
	hub.Broadcast([]byte("one"))

	// Assert: хаб закрывает канал медленного клиента, не дожидаясь его
	require.Equal(t, "stale", string(<-client.send))
	select {
	case _, open := <-client.send:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("медленный клиент не был отключен")
	}
}
