package runtime

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

type worker struct {
	name   string
	run    func(context.Context) error
	closeF func() error
}

// Supervisor runs a set of named workers concurrently. Workers start in
// registration order and close in reverse order; the first worker error is
// the one reported.
type Supervisor struct {
	mu      sync.Mutex
	workers []worker
	wg      sync.WaitGroup
	errOnce sync.Once
	err     error
}

func NewSupervisor() *Supervisor {
	return &Supervisor{}
}

// Add registers a worker. closeF may be nil.
func (s *Supervisor) Add(name string, run func(context.Context) error, closeF func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append(s.workers, worker{name: name, run: run, closeF: closeF})
}

// Start launches every registered worker.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.workers {
		s.wg.Add(1)
		go func(w worker) {
			defer s.wg.Done()
			log.WithField("worker", w.name).Debug("Worker started")
			if err := w.run(ctx); err != nil {
				log.WithError(err).WithField("worker", w.name).Error("Worker failed")
				s.errOnce.Do(func() { s.err = err })
			}
			log.WithField("worker", w.name).Debug("Worker stopped")
		}(w)
	}
	return nil
}

// Wait blocks until ctx is done, then closes workers in reverse order and
// waits for them to drain. Close failures are logged, not returned; the
// returned error is the first worker failure, if any.
func (s *Supervisor) Wait(ctx context.Context) error {
	<-ctx.Done()
	for i := len(s.workers) - 1; i >= 0; i-- {
		w := s.workers[i]
		if w.closeF == nil {
			continue
		}
		if err := w.closeF(); err != nil {
			log.WithError(err).WithField("worker", w.name).Warn("Worker close failed")
		}
	}
	s.wg.Wait()
	return s.err
}
