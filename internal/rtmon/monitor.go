// Package rtmon observes link-layer membership changes from a raw kernel
// routing socket. The monitor is a single-pass, non-restartable sequence of
// events: it ends only when the kernel closes the stream, and per-message
// read errors are reported per item without ending it.
package rtmon

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/dmdmdm-nz/lladdrd/internal/nic"
	"github.com/dmdmdm-nz/lladdrd/internal/route"
	"github.com/dmdmdm-nz/lladdrd/internal/sys"
)

// OpenError reports a failed routing-socket creation.
type OpenError struct {
	Ret   int
	Errno syscall.Errno
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open routing socket: ret=%d errno=%d (%s)", e.Ret, int(e.Errno), e.Errno.Error())
}

// ReadError reports one failed read. The stream stays usable; the caller
// may keep calling Next.
type ReadError struct {
	Fd    int
	Errno syscall.Errno
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read routing socket: fd=%d errno=%d (%s)", e.Fd, int(e.Errno), e.Errno.Error())
}

// Monitor owns one raw routing-socket descriptor for its lifetime.
type Monitor struct {
	sys    sys.Syscalls
	fd     int
	buf    [route.BufSize]byte
	closed bool
}

// Open creates the raw routing-event socket.
func Open(sc sys.Syscalls) (*Monitor, error) {
	fd, err := sc.Socket(unix.AF_ROUTE, unix.SOCK_RAW, unix.AF_UNSPEC)
	if err != nil {
		var errno syscall.Errno
		errors.As(err, &errno)
		return nil, &OpenError{Ret: -1, Errno: errno}
	}
	return &Monitor{sys: sc, fd: fd}, nil
}

// Next blocking-reads and classifies one routing message. A zero-length
// read means the kernel closed the stream and yields io.EOF; a failed read
// yields a *ReadError without ending the stream. Messages that are not
// link-layer membership changes yield a Noop event.
func (m *Monitor) Next() (Event, error) {
	n, err := m.sys.Read(m.fd, m.buf[:])
	if err != nil {
		var errno syscall.Errno
		errors.As(err, &errno)
		return Event{}, &ReadError{Fd: m.fd, Errno: errno}
	}
	if n == 0 {
		return Event{}, io.EOF
	}
	return classify(m.buf[:n]), nil
}

// Close releases the descriptor. Only the first call closes; a failure is
// logged, never propagated.
func (m *Monitor) Close() {
	if m.closed {
		return
	}
	m.closed = true
	if err := m.sys.Close(m.fd); err != nil {
		log.WithError(err).WithField("fd", m.fd).Warn("Failed to close routing socket")
	}
}

func classify(buf []byte) Event {
	h := route.MsgHdr(buf)
	if !h.Ok() {
		log.WithField("len", len(buf)).Debug("Ignoring truncated routing message")
		return Event{}
	}
	if h.Version() != route.Version {
		log.WithFields(log.Fields{
			"version":  h.Version(),
			"expected": route.Version,
		}).Debug("Ignoring routing message with unexpected version")
		return Event{}
	}

	var kind Kind
	switch h.Type() {
	case route.MsgTypeNewMAddr:
		kind = Added
	case route.MsgTypeDelMAddr:
		kind = Removed
	default:
		// Recognized-but-uninteresting types pass silently; unknown ones
		// get a log line. Both are Noop.
		if _, known := route.MsgTypeName(h.Type()); !known {
			log.WithField("type", fmt.Sprintf("%#x", h.Type())).Debug("Ignoring unrecognized routing message type")
		}
		return Event{}
	}

	ev, ok := extract(route.IfmaMsgHdr(buf))
	if !ok {
		return Event{}
	}
	ev.Kind = kind
	return ev
}

// extract pulls the link index, interface name and link-level address out
// of the message's interface-pointer sockaddr. Any record that is not a
// link-layer Ethernet address yields no event data.
func extract(h route.IfmaMsgHdr) (Event, bool) {
	sdl, ok := h.Ifp()
	if !ok {
		return Event{}, false
	}
	index, nameBytes, addrBytes, ok := sdl.LinkEther()
	if !ok {
		return Event{}, false
	}

	name, err := nic.IfNameFromBuf(nameBytes)
	if err != nil {
		// The record carried no usable name; synthesize one from the
		// kernel-assigned link index.
		name, err = nic.ParseIfName(fmt.Sprintf("index%d", index))
		if err != nil {
			return Event{}, false
		}
	}

	addr, err := nic.LLAddrFromBuf(addrBytes)
	if err != nil {
		return Event{}, false
	}

	return Event{Index: index, Name: name, Addr: addr}, true
}
