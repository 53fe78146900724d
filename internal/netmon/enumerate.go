package netmon

import (
	"net"

	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/lladdrd/internal/ctl"
	"github.com/dmdmdm-nz/lladdrd/internal/nic"
	"github.com/dmdmdm-nz/lladdrd/internal/sys"
)

// Enumerator lists the interfaces present right now as Added events. The
// service runs it once at start so that subscribers see pre-existing
// interfaces, not only the ones that change afterwards.
type Enumerator func() []Event

// SystemEnumerator reads each interface's link-level address over a single
// control channel. Interfaces without a hardware address are skipped.
func SystemEnumerator(sc sys.Syscalls) Enumerator {
	return func() []Event {
		ifaces, err := net.Interfaces()
		if err != nil {
			log.WithError(err).Warn("Failed to enumerate interfaces")
			return nil
		}

		ch, err := ctl.Open(sc)
		if err != nil {
			log.WithError(err).Warn("Failed to open control channel for interface scan")
			return nil
		}
		defer ch.Close()

		events := make([]Event, 0, len(ifaces))
		for _, iface := range ifaces {
			name, err := nic.ParseIfName(iface.Name)
			if err != nil {
				continue
			}
			addr, err := ch.GetLLAddr(name)
			if err != nil {
				log.WithError(err).WithField("interface", iface.Name).
					Debug("Skipping interface without a readable link-level address")
				continue
			}
			if addr == (nic.LLAddr{}) {
				continue
			}
			events = append(events, Event{
				Type:          LLAddrAdded,
				InterfaceName: name.String(),
				LinkIndex:     iface.Index,
				LLAddr:        addr.String(),
			})
		}
		return events
	}
}
