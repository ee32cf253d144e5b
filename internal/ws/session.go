package ws

import "sync"

const outboxSize = 64

// Session is the send half of one websocket connection. The hub queues
// encoded payloads through TrySend; a writer goroutine owned by the
// handler drains them onto the wire. Closing is idempotent and flips every
// later TrySend into a skip.
type Session struct {
	outbox chan []byte
	done   chan struct{}
	once   sync.Once
}

func newSession() *Session {
	return &Session{
		outbox: make(chan []byte, outboxSize),
		done:   make(chan struct{}),
	}
}

// TrySend implements game.Conn. A closed session or full outbox reports
// false; the caller treats that as a skipped peer, never an error.
func (s *Session) TrySend(b []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.outbox <- b:
		return true
	default:
		return false
	}
}

func (s *Session) Close() {
	s.once.Do(func() { close(s.done) })
}
