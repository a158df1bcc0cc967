package messaging

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type wsEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// A hub fans events out to every open connection belonging to one user.
// Users can hold several connections at once (phone plus laptop).
type hub struct {
	userID  string
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

var (
	hubsMu sync.RWMutex
	hubs   = make(map[string]*hub)
)

func getHub(userID string) *hub {
	hubsMu.Lock()
	defer hubsMu.Unlock()
	if h, ok := hubs[userID]; ok {
		return h
	}
	h := &hub{userID: userID, clients: make(map[*websocket.Conn]bool)}
	hubs[userID] = h
	return h
}

func (h *hub) broadcast(evt wsEvent) {
	payload, _ := json.Marshal(evt)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.WriteMessage(websocket.TextMessage, payload)
	}
}

func (h *hub) register(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *hub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
	}
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// LiveWS - websocket for realtime updates on the caller's own requests.
// The JWT middleware runs before this, so user_id is already trusted.
func LiveWS(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h := getHub(userID)
	h.register(ws)

	// Read loop (discard client messages; protocol is server push for now)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			h.unregister(ws)
			_ = ws.Close()
			break
		}
	}
	return nil
}

// BroadcastRequestCreated - push a new booking to the worker's dashboard
func BroadcastRequestCreated(workerID string, request interface{}) {
	h := getHub(workerID)
	h.broadcast(wsEvent{Type: "request_new", Data: request})
}

// BroadcastRequestStatus - push a status change to the customer's dashboard
func BroadcastRequestStatus(userID string, request interface{}) {
	h := getHub(userID)
	h.broadcast(wsEvent{Type: "request_status", Data: request})
}
