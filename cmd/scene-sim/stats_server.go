package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/plus3/packecs/ecs"
	"github.com/sirupsen/logrus"
)

// Snapshot is the message streamed to stats clients.
type Snapshot struct {
	Frame          uint64            `json:"frame"`
	FrameTimeMs    float32           `json:"frameTimeMs"`
	AvgFrameTimeMs float32           `json:"avgFrameTimeMs"`
	Lights         int               `json:"lights"`
	MeshDraws      int               `json:"meshDraws"`
	LightDraws     int               `json:"lightDraws"`
	Manager        *ecs.ManagerStats `json:"manager"`
}

type statsClient struct {
	ID       string
	Conn     *websocket.Conn
	Outgoing chan Snapshot
}

// StatsHub fans snapshots out to connected websocket clients. Slow clients miss
// snapshots instead of stalling the simulation.
type StatsHub struct {
	log      *logrus.Entry
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*statsClient
}

func NewStatsHub(log *logrus.Entry) *StatsHub {
	return &StatsHub{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*statsClient),
	}
}

// Handler upgrades the request and streams snapshots until the client leaves.
func (h *StatsHub) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("failed to upgrade stats connection")
		return
	}

	client := &statsClient{
		ID:       uuid.New().String(),
		Conn:     conn,
		Outgoing: make(chan Snapshot, 8),
	}
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	log := h.log.WithField("client", client.ID)
	log.Info("stats client connected")

	go h.readLoop(client, log)
	h.writeLoop(client, log)
}

// readLoop drains control frames and detects the client closing.
func (h *StatsHub) readLoop(c *statsClient, log *logrus.Entry) {
	defer h.disconnect(c)
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			log.WithError(err).Debug("stats client read ended")
			return
		}
	}
}

func (h *StatsHub) writeLoop(c *statsClient, log *logrus.Entry) {
	defer c.Conn.Close()
	for snapshot := range c.Outgoing {
		c.Conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.Conn.WriteJSON(snapshot); err != nil {
			log.WithError(err).Warn("stats write failed")
			h.disconnect(c)
			return
		}
	}
	log.Info("stats client disconnected")
}

func (h *StatsHub) disconnect(c *statsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)
	close(c.Outgoing)
}

// Publish queues s for every connected client.
func (h *StatsHub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.Outgoing <- s:
		default:
			h.log.WithField("client", c.ID).Debug("dropping snapshot for slow client")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *StatsHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *StatsHub) Close() {
	h.mu.Lock()
	clients := make([]*statsClient, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.disconnect(c)
	}
}
