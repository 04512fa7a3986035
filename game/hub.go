package game

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Hub maps player ids to their live sessions and implements Deliverer.
// Delivery to an unknown or closed session is a silent drop.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*session),
		log:      log,
	}
}

func (h *Hub) add(s *session) {
	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

func (h *Hub) Deliver(playerID, event string, payload any) {
	data, err := json.Marshal(ServerEnvelope{Event: event, Data: payload})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("marshaling server event")
		return
	}

	h.mu.RLock()
	s := h.sessions[playerID]
	h.mu.RUnlock()

	if s != nil {
		s.deliver(data)
	}
}
