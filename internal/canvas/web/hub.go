// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/deepak-ramesh/map-task/internal/logger"
)

const (
	sendBuffer   = 256
	writeTimeout = time.Second * 10
	pongTimeout  = time.Second * 60
	pingInterval = (pongTimeout * 9) / 10
	readLimit    = 1024
)

type hub struct {
	logger  *logger.Logger
	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan event
	once sync.Once
}

func newHub(log *logger.Logger) *hub {
	return &hub{
		logger:  log,
		clients: make(map[*client]struct{}),
	}
}

// attach registers conn and queues first as its first event. The pumps are started by the caller.
func (h *hub) attach(conn *websocket.Conn, first event) *client {
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan event, sendBuffer),
	}
	c.send <- first

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("map page connected", slog.String("client", c.id))
	return c
}

func (h *hub) detach(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.once.Do(func() { close(c.send) })
		h.logger.Debug("map page disconnected", slog.String("client", c.id))
	}
}

// broadcast queues ev for every client. A client whose buffer is full is dropped; the page
// reconnects and receives a fresh snapshot.
func (h *hub) broadcast(ev event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			delete(h.clients, c)
			c.once.Do(func() { close(c.send) })
			h.logger.Warn("dropping slow map page", slog.String("client", c.id))
		}
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.once.Do(func() { close(c.send) })
	}
}

// writePump forwards queued events to the connection and keeps it alive with pings.
func (h *hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				h.logger.Debug("failed to write event to map page", logger.Err(err), slog.String("client", c.id))
				h.detach(c)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				h.detach(c)
				return
			}
		}
	}
}

// readPump discards incoming messages and detaches the client once the connection ends.
func (h *hub) readPump(c *client) {
	defer func() {
		h.detach(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("map page connection error", logger.Err(err), slog.String("client", c.id))
			}
			return
		}
	}
}
