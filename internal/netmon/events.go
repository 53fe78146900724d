package netmon

type EventType string

const (
	LLAddrAdded   EventType = "LLADDR_ADDED"
	LLAddrRemoved EventType = "LLADDR_REMOVED"
)

// Event reports a link-layer membership change on one interface.
type Event struct {
	Type          EventType
	InterfaceName string
	LinkIndex     int
	LLAddr        string
}

type EventHandler func(event Event)
