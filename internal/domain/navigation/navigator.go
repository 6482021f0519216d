package navigation

import (
	"context"
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Navigator tracks the current route per session and guarantees that at most
// one page load is current at a time. Starting a navigation cancels the
// previous in-flight load; a superseded load's result is detected by its
// token no longer matching the session's current token.
type Navigator struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
}

type sessionState struct {
	current Route
	started bool // false until the first navigation (uninitialized start state)
	token   string
	cancel  context.CancelFunc
}

// NewNavigator creates an empty navigator.
func NewNavigator() *Navigator {
	return &Navigator{
		sessions: make(map[string]*sessionState),
	}
}

// Begin starts a navigation for a session. Any in-flight load for the session
// is cancelled first. The returned context governs the new load, and the
// returned token must be presented to Commit before the load's result is used.
func (n *Navigator) Begin(parent context.Context, sessionID string, route Route) (context.Context, string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	state, exists := n.sessions[sessionID]
	if !exists {
		state = &sessionState{}
		n.sessions[sessionID] = state
	}

	if state.cancel != nil {
		state.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	state.current = route
	state.started = true
	state.token = ulid.MustNew(ulid.Now(), rand.Reader).String()
	state.cancel = cancel

	return ctx, state.token
}

// Commit reports whether the load identified by token is still the session's
// current load. A false return means a newer navigation superseded it and the
// result must be discarded.
func (n *Navigator) Commit(sessionID, token string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	state, exists := n.sessions[sessionID]
	if !exists {
		return false
	}
	return state.token == token
}

// Finish releases the cancel handle for a completed load if it is still
// current. Late finishes from superseded loads are ignored.
func (n *Navigator) Finish(sessionID, token string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	state, exists := n.sessions[sessionID]
	if !exists || state.token != token {
		return
	}
	if state.cancel != nil {
		state.cancel()
		state.cancel = nil
	}
}

// Current returns the session's current route. The second return is false
// while the session is still in its uninitialized start state.
func (n *Navigator) Current(sessionID string) (Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	state, exists := n.sessions[sessionID]
	if !exists || !state.started {
		return DefaultRoute, false
	}
	return state.current, true
}

// Drop removes a session's navigation state, cancelling any in-flight load.
func (n *Navigator) Drop(sessionID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if state, exists := n.sessions[sessionID]; exists {
		if state.cancel != nil {
			state.cancel()
		}
		delete(n.sessions, sessionID)
	}
}
