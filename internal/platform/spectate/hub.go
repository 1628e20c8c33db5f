// Package spectate streams game state to read-only websocket clients.
//
// Spectators receive JSON text frames by default. Connecting with
// ?format=proto switches the client to binary frames holding the same
// message as a protobuf Struct.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	sendQueueSize = 64
	writeTimeout  = 5 * time.Second
)

// Message is one state update as sent to spectators.
type Message struct {
	Game   string `json:"game"`
	Player string `json:"player"`
	State  any    `json:"state"`
}

// Frame formats a spectator can ask for.
const (
	FormatJSON  = "json"
	FormatProto = "proto"
)

type client struct {
	id        string
	format    string
	conn      *websocket.Conn
	sendQueue chan []byte
}

func (c *client) messageType() int {
	if c.format == FormatProto {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

// Hub fans published states out to every connected spectator.
// Publishing never blocks: a spectator whose queue is full misses updates.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates a hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
		clients:  make(map[*client]struct{}),
	}
}

// Publish encodes a state update and queues it for every spectator.
// Nothing is encoded while no spectator is connected.
func (h *Hub) Publish(game, player string, state any) {
	if h.Clients() == 0 {
		return
	}

	data, err := json.Marshal(Message{Game: game, Player: player, State: state})
	if err != nil {
		h.logger.Error("cannot encode state", "game", game, "error", err)
		return
	}
	h.broadcast(data)
}

// EncodeProto converts a JSON-encoded message into a protobuf Struct.
func EncodeProto(data []byte) ([]byte, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("spectate: decode message: %w", err)
	}
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("spectate: build struct: %w", err)
	}
	out, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("spectate: marshal struct: %w", err)
	}
	return out, nil
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Binary frames are encoded once, on first use.
	var (
		binary  []byte
		encoded bool
	)
	for c := range h.clients {
		frame := data
		if c.format == FormatProto {
			if !encoded {
				var err error
				if binary, err = EncodeProto(data); err != nil {
					h.logger.Error("cannot encode protobuf frame", "error", err)
				}
				encoded = true
			}
			if binary == nil {
				continue
			}
			frame = binary
		}

		select {
		case c.sendQueue <- frame:
		default:
			h.logger.Debug("dropping update, send queue full", "client", c.id)
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams updates until the spectator
// disconnects. Anything the spectator sends is ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	switch format {
	case "":
		format = FormatJSON
	case FormatJSON, FormatProto:
	default:
		http.Error(w, "unknown format "+format, http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		id:        uuid.New().String(),
		format:    format,
		conn:      conn,
		sendQueue: make(chan []byte, sendQueueSize),
	}
	if !h.register(c) {
		conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck // Best-effort close frame
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}
	h.logger.Info("spectator connected", "client", c.id, "format", format, "remote", conn.RemoteAddr().String())

	go h.writeLoop(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(c)
	conn.Close()
	h.logger.Info("spectator disconnected", "client", c.id)
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.sendQueue {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck // Surfaces on WriteMessage
		if err := c.conn.WriteMessage(c.messageType(), msg); err != nil {
			h.logger.Debug("write failed", "client", c.id, "error", err)
			c.conn.Close()
			return
		}
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.sendQueue)
	}
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.sendQueue)
		c.conn.Close()
	}
}

// ListenAndServe serves the hub at /spectate on addr until ctx is canceled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/spectate", h)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck // Server is going away
	}()

	h.logger.Info("spectator feed listening", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
