package netmon

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/lladdrd/internal/runtime"
)

// Service fans link-layer membership changes out to subscribers. It tracks
// the last known link-level address per interface so that new subscribers
// get a snapshot before the live stream, and duplicate watcher events are
// suppressed.
type Service struct {
	watcher Watcher
	enum    Enumerator

	subsMu           sync.Mutex
	subs             map[int]*runtime.SubQueue[Event]
	nextSubscriberID int

	mu      sync.RWMutex
	lladdrs map[string]Event // last Added event per interface name
	closed  bool
}

// NewService builds the fan-out service. enum seeds the known-interface
// state at start; nil skips the scan.
func NewService(watcher Watcher, enum Enumerator) *Service {
	return &Service{
		watcher: watcher,
		enum:    enum,
		subs:    make(map[int]*runtime.SubQueue[Event]),
		lladdrs: make(map[string]Event),
	}
}

// Subscribe registers a consumer. The channel first carries one Added event
// per currently known interface (the snapshot), then live events. The
// returned function unsubscribes.
func (s *Service) Subscribe() (<-chan Event, func()) {
	// Take a snapshot.
	s.mu.RLock()
	snapshot := make([]Event, 0, len(s.lladdrs))
	for _, ev := range s.lladdrs {
		snapshot = append(snapshot, ev)
	}
	s.mu.RUnlock()

	// Create sub with buffer big enough for the snapshot.
	outBuf := len(snapshot) + 8
	sub := runtime.NewSubQueue[Event](outBuf)

	// Register subscriber in paused mode (live events will enqueue).
	s.subsMu.Lock()
	id := s.nextSubscriberID
	s.nextSubscriberID++
	s.subs[id] = sub
	s.subsMu.Unlock()

	// Emit the snapshot directly to the subscriber channel, then go live.
	for _, ev := range snapshot {
		sub.SnapshotSend(ev)
	}
	sub.Resume()

	unsub := func() {
		s.subsMu.Lock()
		if q, ok := s.subs[id]; ok {
			delete(s.subs, id)
			q.Close()
		}
		s.subsMu.Unlock()
	}
	return sub.Chan(), unsub
}

// Start runs the platform watcher until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	log.Info("Starting link-level address monitoring service")
	defer log.Info("Stopping link-level address monitoring service")

	// Seed state with the interfaces that already exist (only time we
	// scan all); afterwards the watcher keeps it current.
	if s.enum != nil {
		for _, ev := range s.enum() {
			s.handleWatcherEvent(ev)
		}
	}

	return s.watcher.Start(ctx, s.handleWatcherEvent)
}

func (s *Service) Close() error {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for id, q := range s.subs {
		q.Close()
		delete(s.subs, id)
	}
	return nil
}

func (s *Service) handleWatcherEvent(ev Event) {
	switch ev.Type {
	case LLAddrAdded:
		s.mu.Lock()
		known, exists := s.lladdrs[ev.InterfaceName]
		if exists && known.LLAddr == ev.LLAddr {
			s.mu.Unlock()
			return
		}
		s.lladdrs[ev.InterfaceName] = ev
		s.mu.Unlock()

		log.WithFields(log.Fields{
			"interface": ev.InterfaceName,
			"lladdr":    ev.LLAddr,
		}).Info("Interface link-level address added")
		s.broadcast(ev)

	case LLAddrRemoved:
		s.mu.Lock()
		_, exists := s.lladdrs[ev.InterfaceName]
		if exists {
			delete(s.lladdrs, ev.InterfaceName)
		}
		s.mu.Unlock()
		if !exists {
			return
		}

		log.WithFields(log.Fields{
			"interface": ev.InterfaceName,
			"lladdr":    ev.LLAddr,
		}).Info("Interface link-level address removed")
		s.broadcast(ev)
	}
}

func (s *Service) broadcast(ev Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		sub.Enqueue(ev)
	}
}
