package rtmon

import "github.com/dmdmdm-nz/lladdrd/internal/nic"

// Kind classifies one routing message. Everything that is not a link-layer
// membership change collapses to Noop, which keeps the event type small
// across kernel versions.
type Kind int

const (
	Noop Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "noop"
	}
}

// Event is one observed link-layer membership change. Events are transient;
// nothing is stored.
type Event struct {
	Kind  Kind
	Index uint16
	Name  nic.IfName
	Addr  nic.LLAddr
}
