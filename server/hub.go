package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mpvremote/mpvremote/log"
	"github.com/mpvremote/mpvremote/media"
	"github.com/mpvremote/mpvremote/session"
	"github.com/mpvremote/mpvremote/status"
)

const (
	pushInterval = 250 * time.Millisecond
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
	sendBuffer   = 16
)

// Event types pushed over /ws.
const (
	EventStatus  = "status"
	EventLibrary = "library"
)

// Event is one message pushed to websocket subscribers.
type Event struct {
	Type   string           `json:"type"`
	Status *status.Snapshot `json:"status,omitempty"`
	Change *media.Change    `json:"change,omitempty"`
}

// hub pushes status snapshots and library changes to websocket subscribers.
// Player changes are coalesced to at most one snapshot per pushInterval.
type hub struct {
	controller *session.Controller
	upgrader   websocket.Upgrader

	mu      sync.Mutex
	clients map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan Event
}

func newHub(controller *session.Controller, allowOrigin func(string) bool) *hub {
	return &hub{
		controller: controller,
		clients:    make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowOrigin(origin)
			},
		},
	}
}

// run forwards player changes until ctx is done.
func (h *hub) run(ctx context.Context) {
	changes, unsubscribe := h.controller.Changes()
	defer unsubscribe()

	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()

	dirty := false
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-changes:
			dirty = true
		case <-ticker.C:
			if !dirty {
				continue
			}
			dirty = false
			snap := h.controller.Status()
			h.broadcast(Event{Type: EventStatus, Status: &snap})
		}
	}
}

// publish sends a library change to every subscriber.
func (h *hub) publish(change media.Change) {
	h.broadcast(Event{Type: EventLibrary, Change: &change})
}

func (h *hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.clients {
		select {
		case sub.send <- ev:
		default:
			log.Debugf("dropping %s event for slow websocket subscriber", ev.Type)
		}
	}
}

func (h *hub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("websocket upgrade: %v", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan Event, sendBuffer)}
	snap := h.controller.Status()
	sub.send <- Event{Type: EventStatus, Status: &snap}

	h.mu.Lock()
	h.clients[sub] = struct{}{}
	h.mu.Unlock()

	go h.writePump(sub)
	h.readPump(sub)
}

// readPump discards client messages; it returns when the client goes away.
func (h *hub) readPump(sub *subscriber) {
	defer h.drop(sub)

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *hub) writePump(sub *subscriber) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	defer sub.conn.Close()

	for {
		select {
		case ev, ok := <-sub.send:
			if !ok {
				_ = sub.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeTimeout))
				return
			}
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := sub.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			if err := sub.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

func (h *hub) drop(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[sub]; ok {
		delete(h.clients, sub)
		close(sub.send)
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.clients {
		delete(h.clients, sub)
		close(sub.send)
	}
}
