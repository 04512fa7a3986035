package game

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// session is one connected player: the read pump feeds actions to the
// dispatcher, the write pump drains the inbox and keeps the connection
// alive with pings. The inbox is buffered and drops on overflow so a slow
// client can never stall a room.
type session struct {
	id      string
	conn    NetworkSession
	inbox   chan []byte
	limiter *rate.Limiter
	done    chan struct{}
	once    sync.Once
}

func newSession(id string, conn NetworkSession) *session {
	return &session{
		id:      id,
		conn:    conn,
		inbox:   make(chan []byte, 256),
		limiter: rate.NewLimiter(5, 10),
		done:    make(chan struct{}),
	}
}

// deliver queues data for the write pump without ever blocking.
func (s *session) deliver(data []byte) {
	select {
	case s.inbox <- data:
	case <-s.done:
	default:
	}
}

// readPump blocks until the connection dies, handing each frame that passes
// the rate limiter to handle. Runs on the connection's own goroutine.
func (s *session) readPump(handle func(data []byte)) {
	defer s.close()
	for {
		data, err := s.conn.Read()
		if err != nil {
			return
		}
		if !s.limiter.Allow() {
			continue
		}
		handle(data)
	}
}

func (s *session) writePump() {
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	for {
		select {
		case data := <-s.inbox:
			if err := s.conn.Write(data); err != nil {
				s.close()
				return
			}
		case <-pings.C:
			if err := s.conn.Ping(); err != nil {
				s.close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close("")
	})
}
