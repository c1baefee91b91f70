package replay

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for the results of a request that a newer request in the same
// console session has replaced
var ErrSuperseded = errors.New("request superseded by a newer search")

// Sessions hands out one generation per console session. Starting a new request cancels the
// in-flight one so a slow earlier response can never overwrite a later one.
type Sessions struct {
	mutex    sync.Mutex
	sessions map[string]*sessionState

	// generations are unique across sessions so a forgotten session can't revive an old ticket
	lastGeneration uint64
}

type sessionState struct {
	generation uint64
	cancel     context.CancelFunc
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: map[string]*sessionState{},
	}
}

type Ticket struct {
	Context context.Context

	key        string
	generation uint64
	sessions   *Sessions
	cancel     context.CancelFunc
}

func (s *Sessions) Begin(ctx context.Context, key string) *Ticket {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	state, exists := s.sessions[key]
	if !exists {
		state = &sessionState{}
		s.sessions[key] = state
	}

	if state.cancel != nil {
		state.cancel()
	}

	ticketContext, cancel := context.WithCancel(ctx)

	s.lastGeneration++
	state.generation = s.lastGeneration
	state.cancel = cancel

	return &Ticket{
		Context:    ticketContext,
		key:        key,
		generation: state.generation,
		sessions:   s,
		cancel:     cancel,
	}
}

func (t *Ticket) Generation() uint64 {
	return t.generation
}

func (t *Ticket) Current() bool {
	t.sessions.mutex.Lock()
	defer t.sessions.mutex.Unlock()

	state, exists := t.sessions.sessions[t.key]

	return exists && state.generation == t.generation
}

// Check returns ErrSuperseded once a newer ticket exists for the session
func (t *Ticket) Check() error {
	if !t.Current() {
		return ErrSuperseded
	}

	return nil
}

// Finish releases the ticket context and forgets the session if this was its newest request
func (t *Ticket) Finish() {
	t.cancel()

	t.sessions.mutex.Lock()
	defer t.sessions.mutex.Unlock()

	if state, exists := t.sessions.sessions[t.key]; exists && state.generation == t.generation {
		delete(t.sessions.sessions, t.key)
	}
}
