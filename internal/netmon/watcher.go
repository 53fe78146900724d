package netmon

import "context"

// Watcher observes link-layer membership changes using platform-specific
// event mechanisms (route sockets on macOS, netlink on Linux).
type Watcher interface {
	// Start begins watching for changes.
	// Calls callback for each detected change.
	// Blocks until ctx is cancelled or an error occurs.
	Start(ctx context.Context, callback func(Event)) error
}
