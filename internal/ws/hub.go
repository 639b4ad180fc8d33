package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// Snapshot - состояние симуляции, рассылаемое подписчикам после каждого тика
type Snapshot struct {
	Ambulances []*models.Ambulance `json:"ambulances"`
	Incidents  []*models.Incident  `json:"incidents"`
	Timestamp  time.Time           `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Презентационный слой живет на другом origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub раздает снапшоты симуляции websocket-подписчикам
type Hub struct {
	logger *logrus.Logger

	// Registered clients
	clients map[*client]bool

	// Register requests from clients
	register chan *client

	// Unregister requests from clients
	unregister chan *client

	// Broadcast payload to all clients
	broadcast chan []byte

	// Closed when the hub loop exits, unblocks register/unregister senders
	done chan struct{}

	mutex sync.RWMutex
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает регистрацию клиентов и рассылку до отмены контекста
func (h *Hub) Run(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				h.closeAll()
				close(h.done)
				return
			case c := <-h.register:
				h.mutex.Lock()
				h.clients[c] = true
				h.mutex.Unlock()
				h.logger.WithField("clients", h.clientCount()).Debug("Live feed client connected")
			case c := <-h.unregister:
				h.mutex.Lock()
				if _, ok := h.clients[c]; ok {
					delete(h.clients, c)
					close(c.send)
				}
				h.mutex.Unlock()
				h.logger.WithField("clients", h.clientCount()).Debug("Live feed client disconnected")
			case payload := <-h.broadcast:
				h.mutex.RLock()
				for c := range h.clients {
					select {
					case c.send <- payload:
					default:
						// Медленный клиент: не блокируем рассылку
					}
				}
				h.mutex.RUnlock()
			}
		}
	}()
}

// BroadcastSnapshot сериализует и рассылает снапшот всем клиентам.
// Не блокирует вызывающий тик: при переполненном канале снапшот
// отбрасывается, следующий тик принесет более свежие данные.
func (h *Hub) BroadcastSnapshot(s Snapshot) {
	payload, err := json.Marshal(s)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal live feed snapshot")
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

// HandleUpgrade апгрейдит HTTP-соединение до websocket и регистрирует клиента
func (h *Hub) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 8),
	}
	select {
	case h.register <- c:
	case <-h.done:
		// Хаб уже остановлен, соединение не обслуживаем
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) clientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
