//go:build darwin

package netmon

import (
	"context"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/lladdrd/internal/rtmon"
	"github.com/dmdmdm-nz/lladdrd/internal/sys"
)

type darwinWatcher struct{}

// NewWatcher creates a macOS-specific watcher over an AF_ROUTE socket.
func NewWatcher() Watcher {
	return &darwinWatcher{}
}

func (w *darwinWatcher) Start(ctx context.Context, callback func(Event)) error {
	mon, err := rtmon.Open(sys.Unix{})
	if err != nil {
		return err
	}

	// Closing the descriptor is the only way to unblock the read when the
	// context is cancelled.
	go func() {
		<-ctx.Done()
		mon.Close()
	}()

	log.Debug("Darwin watcher initialized")

	for {
		ev, err := mon.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
				log.WithError(err).Warn("Error reading from route socket")
				continue
			}
		}

		switch ev.Kind {
		case rtmon.Added:
			callback(Event{
				Type:          LLAddrAdded,
				InterfaceName: ev.Name.String(),
				LinkIndex:     int(ev.Index),
				LLAddr:        ev.Addr.String(),
			})
		case rtmon.Removed:
			callback(Event{
				Type:          LLAddrRemoved,
				InterfaceName: ev.Name.String(),
				LinkIndex:     int(ev.Index),
				LLAddr:        ev.Addr.String(),
			})
		}
	}
}
