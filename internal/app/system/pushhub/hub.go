// internal/app/system/pushhub/hub.go

// Package pushhub tracks live push connections and which user each one
// belongs to, so real-time notifications can be routed by user id.
//
// A connection starts unauthenticated, becomes authenticated once it
// presents a credential the verifier accepts, and is removed the moment its
// disconnect is observed. Unauthenticated connections never receive routed
// notifications, and there is no queuing: a notification for a user with no
// live authenticated session is dropped.
package pushhub

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is the transport half of a push session. Implementations must be
// safe for concurrent Send calls.
type Conn interface {
	// Send delivers one payload to the client; failures are the
	// transport's problem and are not retried.
	Send(payload any) error
	// SendAuthError signals a rejected credential without closing the
	// connection.
	SendAuthError() error
}

// Verifier checks a presented credential and resolves it to a user id.
type Verifier interface {
	Verify(token string) (userID string, err error)
}

// ErrUnknownSession is returned for operations on a connection id the
// registry is not tracking (never connected, or already closed).
var ErrUnknownSession = errors.New("pushhub: unknown session")

type session struct {
	conn   Conn
	userID string // empty until authenticated
}

// Hub is the push session registry.
type Hub struct {
	verifier Verifier
	log      *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*session

	// swept counts sessions removed on disconnect, read by the
	// maintenance job for accounting.
	swept int64
}

// NewHub builds a registry that authenticates credentials with verifier.
func NewHub(verifier Verifier, logger *zap.Logger) *Hub {
	return &Hub{
		verifier: verifier,
		log:      logger,
		sessions: make(map[string]*session),
	}
}

// Connect registers a new unauthenticated connection and returns its id.
func (h *Hub) Connect(conn Conn) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.sessions[id] = &session{conn: conn}
	h.mu.Unlock()
	h.log.Debug("push connection opened", zap.String("conn_id", id))
	return id
}

// Authenticate promotes a connection to a user. An invalid credential
// leaves the connection registered but unauthenticated and signals the
// client; it is never promoted.
func (h *Hub) Authenticate(connID, token string) error {
	h.mu.RLock()
	s, ok := h.sessions[connID]
	h.mu.RUnlock()
	if !ok {
		return ErrUnknownSession
	}

	userID, err := h.verifier.Verify(token)
	if err != nil {
		h.log.Debug("push auth rejected", zap.String("conn_id", connID), zap.Error(err))
		if sendErr := s.conn.SendAuthError(); sendErr != nil {
			h.log.Debug("auth error signal failed", zap.String("conn_id", connID), zap.Error(sendErr))
		}
		return err
	}

	h.mu.Lock()
	// The connection may have closed while the credential was being
	// verified; a closed session must not come back.
	if _, still := h.sessions[connID]; still {
		h.sessions[connID].userID = userID
	}
	h.mu.Unlock()

	h.log.Info("push connection authenticated",
		zap.String("conn_id", connID), zap.String("user_id", userID))
	return nil
}

// Disconnect removes a connection. After it returns no routing attempt will
// reach the connection.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	_, ok := h.sessions[connID]
	if ok {
		delete(h.sessions, connID)
		h.swept++
	}
	h.mu.Unlock()
	if ok {
		h.log.Debug("push connection closed", zap.String("conn_id", connID))
	}
}

// Route delivers payload to every authenticated session of userID.
// It returns the number of sessions the payload was sent to; zero means the
// notification was dropped, which is not an error.
func (h *Hub) Route(userID string, payload any) int {
	h.mu.RLock()
	conns := make([]Conn, 0, 4)
	for _, s := range h.sessions {
		if s.userID == userID && s.userID != "" {
			conns = append(conns, s.conn)
		}
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range conns {
		if err := c.Send(payload); err != nil {
			h.log.Debug("push send failed", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		delivered++
	}
	return delivered
}

// Len reports the number of live sessions, authenticated or not.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// SweptCount returns how many sessions have been removed on disconnect
// since startup.
func (h *Hub) SweptCount() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.swept
}
