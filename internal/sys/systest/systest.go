// Package systest provides an ordered-expectation fake for the sys.Syscalls
// capability interface. Expectations are consumed strictly in registration
// order; a call with no matching expectation fails the test, and so does a
// test that finishes with expectations still queued. Test-only.
package systest

import (
	"sync"
	"syscall"
	"testing"
	"unsafe"
)

type kind string

const (
	kindSocket kind = "Socket"
	kindIoctl  kind = "Ioctl"
	kindRead   kind = "Read"
	kindClose  kind = "Close"
)

type step struct {
	kind kind
	fn   any
}

// Fake implements sys.Syscalls against a queue of expected calls.
type Fake struct {
	t  *testing.T
	mu sync.Mutex
	q  []step
}

// New returns an empty fake. At test cleanup it fails the test if any
// registered expectation was never consumed.
func New(t *testing.T) *Fake {
	f := &Fake{t: t}
	t.Cleanup(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, s := range f.q {
			t.Errorf("systest: expectation %s registered but never called", s.kind)
		}
	})
	return f
}

// ExpectSocket queues an expected Socket call.
func (f *Fake) ExpectSocket(fn func(domain, typ, proto int) (int, error)) *Fake {
	return f.push(kindSocket, fn)
}

// ExpectIoctl queues an expected Ioctl call.
func (f *Fake) ExpectIoctl(fn func(fd int, req uint32, arg unsafe.Pointer) error) *Fake {
	return f.push(kindIoctl, fn)
}

// ExpectRead queues an expected Read call.
func (f *Fake) ExpectRead(fn func(fd int, p []byte) (int, error)) *Fake {
	return f.push(kindRead, fn)
}

// ExpectClose queues an expected Close call.
func (f *Fake) ExpectClose(fn func(fd int) error) *Fake {
	return f.push(kindClose, fn)
}

func (f *Fake) push(k kind, fn any) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.q = append(f.q, step{kind: k, fn: fn})
	return f
}

func (f *Fake) pop(k kind) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.q) == 0 {
		f.t.Errorf("systest: unexpected %s call, no expectations left", k)
		return nil, false
	}
	head := f.q[0]
	if head.kind != k {
		f.t.Errorf("systest: got %s call, next expectation is %s", k, head.kind)
		return nil, false
	}
	f.q = f.q[1:]
	return head.fn, true
}

func (f *Fake) Socket(domain, typ, proto int) (int, error) {
	fn, ok := f.pop(kindSocket)
	if !ok {
		return -1, syscall.EBADF
	}
	return fn.(func(int, int, int) (int, error))(domain, typ, proto)
}

func (f *Fake) Ioctl(fd int, req uint32, arg unsafe.Pointer) error {
	fn, ok := f.pop(kindIoctl)
	if !ok {
		return syscall.EBADF
	}
	return fn.(func(int, uint32, unsafe.Pointer) error)(fd, req, arg)
}

func (f *Fake) Read(fd int, p []byte) (int, error) {
	fn, ok := f.pop(kindRead)
	if !ok {
		// A zero-length read ends any monitor loop cleanly, keeping the
		// failure local to the Errorf above.
		return 0, nil
	}
	return fn.(func(int, []byte) (int, error))(fd, p)
}

func (f *Fake) Close(fd int) error {
	fn, ok := f.pop(kindClose)
	if !ok {
		return syscall.EBADF
	}
	return fn.(func(int) error)(fd)
}
