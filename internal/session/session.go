// Package session runs a campaign on a single goroutine. Every read and
// mutation goes through Do or DoSync so the aggregate never sees
// concurrent access.
package session

import (
	"encoding/json"
	"log"
	"sync"

	"starhold.gg/internal/campaign"
	"starhold.gg/internal/protocol"
)

type Session struct {
	c   *campaign.Campaign
	log *log.Logger

	cmds chan func(*campaign.Campaign)
	quit chan struct{}
	done chan struct{}

	mu        sync.Mutex
	observers map[uint64]chan []byte
	nextObs   uint64
}

func New(c *campaign.Campaign, logger *log.Logger) *Session {
	s := &Session{
		c:         c,
		log:       logger,
		cmds:      make(chan func(*campaign.Campaign), 64),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		observers: map[uint64]chan []byte{},
	}
	// Runs on the session goroutine: Publish is only ever called from
	// campaign methods, which only run inside Do/DoSync closures.
	c.Bus().Subscribe(s.broadcast)
	return s
}

// Start spawns the command loop. Close stops it.
func (s *Session) Start() {
	go s.loop()
}

func (s *Session) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			// Drain queued commands so a final save submitted just
			// before Close still runs.
			for {
				select {
				case fn := <-s.cmds:
					fn(s.c)
				default:
					return
				}
			}
		case fn := <-s.cmds:
			fn(s.c)
		}
	}
}

// Do queues fn for the session goroutine and returns immediately.
// Returns false if the session is shutting down or the queue is full.
func (s *Session) Do(fn func(*campaign.Campaign)) bool {
	select {
	case <-s.quit:
		return false
	default:
	}
	select {
	case s.cmds <- fn:
		return true
	default:
		if s.log != nil {
			s.log.Printf("session: command queue full, dropping")
		}
		return false
	}
}

// DoSync runs fn on the session goroutine and waits for it to finish.
func (s *Session) DoSync(fn func(*campaign.Campaign)) bool {
	wait := make(chan struct{})
	if !s.Do(func(c *campaign.Campaign) {
		defer close(wait)
		fn(c)
	}) {
		return false
	}
	select {
	case <-wait:
		return true
	case <-s.done:
		return false
	}
}

// Summary builds the observer read-model on the session goroutine.
func (s *Session) Summary() (protocol.Summary, bool) {
	var sum protocol.Summary
	ok := s.DoSync(func(c *campaign.Campaign) {
		sum = protocol.Summarize(c)
	})
	return sum, ok
}

// Attach registers an observer and returns its id and frame channel.
// Frames are dropped, not queued, when the channel is full.
func (s *Session) Attach(buf int) (uint64, <-chan []byte) {
	if buf <= 0 {
		buf = 256
	}
	ch := make(chan []byte, buf)
	s.mu.Lock()
	s.nextObs++
	id := s.nextObs
	s.observers[id] = ch
	s.mu.Unlock()
	return id, ch
}

func (s *Session) Detach(id uint64) {
	s.mu.Lock()
	if ch, ok := s.observers[id]; ok {
		delete(s.observers, id)
		close(ch)
	}
	s.mu.Unlock()
}

func (s *Session) broadcast(e campaign.Event) {
	s.mu.Lock()
	n := len(s.observers)
	s.mu.Unlock()
	if n == 0 {
		return
	}
	frame, err := json.Marshal(protocol.EventMsg{
		Type:  protocol.TypeEvent,
		Day:   s.c.Day(),
		Kind:  e.EventKind(),
		Event: e,
	})
	if err != nil {
		if s.log != nil {
			s.log.Printf("session: marshal %s: %v", e.EventKind(), err)
		}
		return
	}
	s.mu.Lock()
	for _, ch := range s.observers {
		select {
		case ch <- frame:
		default:
			// Slow observer; it can resync from /v1/state.
		}
	}
	s.mu.Unlock()
}

// Close stops the loop after draining queued commands and detaches all
// observers.
func (s *Session) Close() {
	select {
	case <-s.quit:
		return
	default:
		close(s.quit)
	}
	<-s.done
	s.mu.Lock()
	for id, ch := range s.observers {
		delete(s.observers, id)
		close(ch)
	}
	s.mu.Unlock()
}
