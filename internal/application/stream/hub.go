package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go-owm/pkg/log"
	"go-owm/pkg/msg"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

var ErrHubClosed = errors.New("weather stream hub is closed")

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Message is the frame sent to stream clients.
type Message struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

// Client is one websocket subscriber.
type Client struct {
	id    string
	hub   *Hub
	conn  *ws.Conn
	send  chan []byte
	match func(topic string) bool
}

// Hub fans published weather updates out to websocket clients. It satisfies queue.Publisher.
type Hub struct {
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	clients    map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			delete(h.clients, client)
			close(client.send)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			log.Debug(msg.GetMessage("weather.stream-opened", client.id), zap.String("client", client.id))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Debug(msg.GetMessage("weather.stream-closed", client.id), zap.String("client", client.id))

		case message := <-h.broadcast:
			frame, err := json.Marshal(message)
			if err != nil {
				log.Warn("Failed to encode stream frame", zap.String("topic", message.Topic), zap.Error(err))
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				if !client.accepts(message.Topic) {
					continue
				}
				select {
				case client.send <- frame:
				default:
					log.Warn(msg.GetMessage("weather.stream-dropped", client.id), zap.String("client", client.id))
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish sends body to every client subscribed to topic.
func (h *Hub) Publish(topic string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message body to JSON: %w", err)
	}

	select {
	case h.broadcast <- Message{Topic: topic, Data: data}:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// TopicPrefix matches every topic under prefix.
func TopicPrefix(prefix string) func(string) bool {
	return func(topic string) bool { return strings.HasPrefix(topic, prefix) }
}

// TopicEquals matches a single topic.
func TopicEquals(want string) func(string) bool {
	return func(topic string) bool { return topic == want }
}

// Serve upgrades the request and streams messages whose topic satisfies match.
// It returns once the connection is registered; pumps run in their own goroutines.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, match func(topic string) bool) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		id:    uuid.NewString(),
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		match: match,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return ErrHubClosed
	}

	go client.writePump()
	go client.readPump()
	return nil
}

func (c *Client) accepts(topic string) bool {
	return c.match == nil || c.match(topic)
}

// readPump discards client frames and unregisters on close.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(ws.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(ws.TextMessage, frame); err != nil {
				log.Debug("Stream write failed", zap.String("client", c.id), zap.Error(err))
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(ws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
