package runtime

import "sync"

// SubQueue decouples event producers from one subscriber. Events enqueue
// into an unbounded in-memory queue and a dispatcher goroutine forwards
// them to the subscriber channel in order. A new queue starts paused so a
// snapshot can be pushed ahead of any live event.
type SubQueue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []T
	closed bool
	paused bool

	outCh chan T // consumer reads from this
}

// NewSubQueue returns a paused queue whose subscriber channel has the given
// buffer. Call Resume once the snapshot has been sent.
func NewSubQueue[T any](outBuf int) *SubQueue[T] {
	sq := &SubQueue[T]{
		outCh:  make(chan T, outBuf),
		paused: true,
	}
	sq.cond = sync.NewCond(&sq.mu)
	go sq.dispatch()
	return sq
}

// Chan is the channel the subscriber reads from.
func (sq *SubQueue[T]) Chan() <-chan T { return sq.outCh }

// Enqueue appends an event and wakes the dispatcher.
func (sq *SubQueue[T]) Enqueue(ev T) {
	sq.mu.Lock()
	if !sq.closed {
		sq.queue = append(sq.queue, ev)
		sq.cond.Signal()
	}
	sq.mu.Unlock()
}

// SnapshotSend pushes an event directly to the subscriber channel, past the
// queue. Only valid while the queue is still paused and the channel buffer
// was sized for the snapshot burst.
func (sq *SubQueue[T]) SnapshotSend(ev T) {
	sq.outCh <- ev
}

// Pause holds back dispatching; queued events accumulate.
func (sq *SubQueue[T]) Pause() { sq.setPaused(true) }

// Resume lets the dispatcher drain the queue, flushing anything that
// accumulated while paused.
func (sq *SubQueue[T]) Resume() { sq.setPaused(false) }

func (sq *SubQueue[T]) setPaused(v bool) {
	sq.mu.Lock()
	sq.paused = v
	sq.cond.Broadcast()
	sq.mu.Unlock()
}

// Close stops the dispatcher and closes the subscriber channel. Safe to
// call more than once.
func (sq *SubQueue[T]) Close() {
	sq.mu.Lock()
	sq.closed = true
	sq.cond.Broadcast()
	sq.mu.Unlock()
}

func (sq *SubQueue[T]) dispatch() {
	for {
		sq.mu.Lock()
		for !sq.closed && (sq.paused || len(sq.queue) == 0) {
			sq.cond.Wait()
		}
		if sq.closed {
			sq.mu.Unlock()
			close(sq.outCh)
			return
		}
		ev := sq.queue[0]
		copy(sq.queue, sq.queue[1:])
		sq.queue = sq.queue[:len(sq.queue)-1]
		sq.mu.Unlock()

		// Blocks only on the channel buffer / reader.
		sq.outCh <- ev
	}
}
