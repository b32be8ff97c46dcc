package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/servicehub/backend/internal/api/middleware"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/providers"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

// clientMessage is an inbound frame from a connected client
type clientMessage struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

// serverMessage is an outbound frame to a connected client
type serverMessage struct {
	Type string      `json:"type"`
	Room string      `json:"room,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// WSHandler bridges the event bus to websocket clients. Each connection is
// subscribed to the caller's own identity channel; provider connections also
// receive the shared marketplace channel. Delivery is best-effort: a client
// that is not connected simply misses events.
type WSHandler struct {
	eventBus providers.EventBus
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(eventBus providers.EventBus) *WSHandler {
	return &WSHandler{
		eventBus: eventBus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin upgrades are allowed; the token already
			// authenticated the caller
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /api/ws
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if h.eventBus == nil {
		respondWithError(w, http.StatusServiceUnavailable, "real-time updates are unavailable")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Str("user_id", caller.ID).Err(err).Msg("websocket upgrade failed")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	defer conn.Close()

	ownChannel := providers.IdentityChannel(caller.ID)
	ownEvents, err := h.eventBus.Subscribe(ctx, ownChannel)
	if err != nil {
		log.Error().Str("channel", ownChannel).Err(err).Msg("failed to subscribe")
		return
	}

	// Providers automatically join the shared marketplace channel; a nil
	// channel blocks forever in the select below, so customers just never
	// receive from it
	var marketEvents <-chan *entities.BookingEvent
	if caller.IsProvider() {
		marketEvents, err = h.eventBus.Subscribe(ctx, providers.ProvidersChannel)
		if err != nil {
			log.Error().Str("channel", providers.ProvidersChannel).Err(err).Msg("failed to subscribe")
			return
		}
	}

	log.Debug().
		Str("user_id", caller.ID).
		Str("role", string(caller.Role)).
		Msg("websocket client connected")

	// All writes go through a single goroutine
	outbound := make(chan serverMessage, 32)
	writerDone := make(chan struct{})
	go h.writePump(conn, outbound, ownEvents, marketEvents, writerDone)

	h.readPump(conn, caller, outbound)

	cancel()
	<-writerDone

	log.Debug().Str("user_id", caller.ID).Msg("websocket client disconnected")
}

// readPump consumes client frames until the connection drops. The only
// recognized request is join_room, which clients may use to explicitly join
// their own identity channel.
func (h *WSHandler) readPump(conn *websocket.Conn, caller *entities.Identity, outbound chan<- serverMessage) {
	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}

		if msg.Type != "join_room" {
			continue
		}

		// Clients may only occupy their own room; the subscription
		// already exists, so this is an acknowledgement
		if msg.Room == caller.ID {
			select {
			case outbound <- serverMessage{Type: "joined", Room: msg.Room}:
			default:
			}
			continue
		}

		select {
		case outbound <- serverMessage{Type: "error", Data: "cannot join another identity's room"}:
		default:
		}
	}
}

// writePump is the single writer for a connection: it forwards bus events,
// sends protocol frames and keeps the connection alive with pings
func (h *WSHandler) writePump(conn *websocket.Conn, outbound <-chan serverMessage, ownEvents, marketEvents <-chan *entities.BookingEvent, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		close(done)
	}()

	writeEvent := func(event *entities.BookingEvent) bool {
		if event == nil {
			return false
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		msg := serverMessage{Type: string(event.EventType), Data: event}
		return conn.WriteJSON(msg) == nil
	}

	for {
		select {
		case event, ok := <-ownEvents:
			if !ok || !writeEvent(event) {
				return
			}
		case event, ok := <-marketEvents:
			if !ok || !writeEvent(event) {
				return
			}
		case msg, ok := <-outbound:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
