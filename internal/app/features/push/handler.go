// internal/app/features/push/handler.go

// Package push is the websocket transport in front of the push session
// registry. The frame protocol matches what the calendar frontend speaks:
//
//	server -> client  {"type":"verifyUser"}            sent on connect
//	client -> server  {"type":"setUser","token":"…"}   presents the bearer token
//	server -> client  {"type":"authError"}             credential rejected
//	server -> client  notification frames              routed by the hub
package push

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dalemusser/meethub/internal/app/system/pushhub"
)

const (
	writeWait      = 10 * time.Second
	maxFrameSize   = 4 * 1024
	authFrameLimit = 16 // misbehaving clients get dropped, not throttled
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Bearer-token auth is the access control; cross-origin pages cannot
	// forge a token, so origin checks add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientFrame is what clients send. Only setUser is recognized.
type clientFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Handler upgrades push connections and pumps their frames into the hub.
type Handler struct {
	Hub *pushhub.Hub
	Log *zap.Logger
}

// NewHandler constructs a push Handler.
func NewHandler(hub *pushhub.Hub, logger *zap.Logger) *Handler {
	return &Handler{Hub: hub, Log: logger}
}

// Serve handles GET /ws.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.Log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := newWSConn(ws)
	connID := h.Hub.Connect(conn)
	defer func() {
		h.Hub.Disconnect(connID)
		_ = ws.Close()
	}()

	if err := conn.Send(map[string]string{"type": "verifyUser"}); err != nil {
		return
	}

	ws.SetReadLimit(maxFrameSize)
	frames := 0
	for {
		var frame clientFrame
		if err := ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Debug("push connection read failed", zap.String("conn_id", connID), zap.Error(err))
			}
			return
		}

		frames++
		if frames > authFrameLimit {
			h.Log.Warn("push connection flooding auth frames", zap.String("conn_id", connID))
			return
		}

		if frame.Type == "setUser" {
			// An invalid token is signaled on the connection by the hub;
			// the client may retry with a fresh one.
			_ = h.Hub.Authenticate(connID, frame.Token)
		}
	}
}

// wsConn adapts a gorilla websocket connection to the hub's Conn interface.
// gorilla permits one concurrent writer, so writes are serialized here.
type wsConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func newWSConn(ws *websocket.Conn) *wsConn {
	return &wsConn{ws: ws}
}

func (c *wsConn) Send(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(payload)
}

func (c *wsConn) SendAuthError() error {
	return c.Send(map[string]string{"type": "authError"})
}
