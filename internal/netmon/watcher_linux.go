//go:build linux

package netmon

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

type linuxWatcher struct{}

// NewWatcher creates a Linux-specific watcher using netlink.
func NewWatcher() Watcher {
	return &linuxWatcher{}
}

func (w *linuxWatcher) Start(ctx context.Context, callback func(Event)) error {
	linkCh := make(chan netlink.LinkUpdate)
	linkDone := make(chan struct{})

	if err := netlink.LinkSubscribe(linkCh, linkDone); err != nil {
		return err
	}
	defer close(linkDone)

	log.Debug("Linux watcher initialized")

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-linkCh:
			w.handleLinkUpdate(update, callback)
		}
	}
}

func (w *linuxWatcher) handleLinkUpdate(update netlink.LinkUpdate, callback func(Event)) {
	attrs := update.Link.Attrs()
	if len(attrs.HardwareAddr) == 0 {
		return
	}

	ev := Event{
		InterfaceName: attrs.Name,
		LinkIndex:     attrs.Index,
		LLAddr:        attrs.HardwareAddr.String(),
	}

	switch update.Header.Type {
	case unix.RTM_NEWLINK:
		ev.Type = LLAddrAdded
	case unix.RTM_DELLINK:
		ev.Type = LLAddrRemoved
	default:
		return
	}

	log.WithFields(log.Fields{
		"interface": ev.InterfaceName,
		"lladdr":    ev.LLAddr,
		"type":      ev.Type,
	}).Trace("Received link update")

	callback(ev)
}
