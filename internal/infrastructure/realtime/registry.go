package realtime

import (
	"sync"

	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/metrics"
)

// Registry maps a user identity to at most one live connection. A second
// connect from the same user replaces (never appends to) the prior socket;
// the replaced socket is closed with code 4001.
//
// Lookup on an unknown user returns nil, never an error; callers treat nil as
// "deliver nothing".
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Connection // userID -> live connection
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Connection)}
}

// Bind associates conn with its user, replacing any prior connection.
// The connection's write loop is started here.
func (r *Registry) Bind(conn *Connection) {
	r.mu.Lock()
	previous := r.sessions[conn.UserID]
	r.sessions[conn.UserID] = conn
	r.mu.Unlock()

	conn.Start()
	metrics.ActiveSessions.Inc()

	if previous != nil {
		previous.Close(4001, "session replaced")
		metrics.ActiveSessions.Dec()
	}
}

// Lookup returns the user's live connection, or nil when absent.
func (r *Registry) Lookup(userID string) *Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[userID]
}

// Unbind clears the session entry for conn, but only while conn is still the
// current binding; a stale unbind after a reconnect must not evict the newer
// socket.
func (r *Registry) Unbind(conn *Connection) {
	r.mu.Lock()
	current, ok := r.sessions[conn.UserID]
	if ok && current.ID == conn.ID {
		delete(r.sessions, conn.UserID)
		metrics.ActiveSessions.Dec()
	}
	r.mu.Unlock()
}

// Notify pushes an event to the user's live socket, if any. Offline targets
// and dead sockets are a silent drop: the return value reports delivery but
// is never an error and the call never blocks.
func (r *Registry) Notify(userID string, e Event) bool {
	conn := r.Lookup(userID)
	if conn == nil {
		metrics.FanoutDropped.Inc()
		return false
	}
	if err := conn.SendEvent(e); err != nil {
		metrics.FanoutDropped.Inc()
		return false
	}
	metrics.FanoutDelivered.Inc()
	return true
}

// Close tears down every tracked connection and clears the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := make([]*Connection, 0, len(r.sessions))
	for _, conn := range r.sessions {
		sessions = append(sessions, conn)
	}
	r.sessions = make(map[string]*Connection)
	r.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "server shutdown")
		metrics.ActiveSessions.Dec()
	}
}
