package netmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventType_Constants(t *testing.T) {
	assert.Equal(t, EventType("LLADDR_ADDED"), LLAddrAdded)
	assert.Equal(t, EventType("LLADDR_REMOVED"), LLAddrRemoved)
}

func TestEvent_Fields(t *testing.T) {
	event := Event{
		Type:          LLAddrAdded,
		InterfaceName: "en0",
		LinkIndex:     4,
		LLAddr:        "00:11:22:33:44:55",
	}

	assert.Equal(t, LLAddrAdded, event.Type)
	assert.Equal(t, "en0", event.InterfaceName)
	assert.Equal(t, 4, event.LinkIndex)
	assert.Equal(t, "00:11:22:33:44:55", event.LLAddr)
}

func TestEventHandler_Type(t *testing.T) {
	var received Event

	handler := EventHandler(func(event Event) {
		received = event
	})

	testEvent := Event{Type: LLAddrRemoved, InterfaceName: "en1"}
	handler(testEvent)

	assert.Equal(t, testEvent, received)
}
