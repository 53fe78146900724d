package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func accept(w http.ResponseWriter, r *http.Request) (*websocket.Conn, context.Context, error) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return nil, nil, err
	}
	return c, r.Context(), nil
}

// StreamEvents upgrades the request to a websocket and relays membership
// events to the client as JSON text messages, starting with the snapshot of
// currently known interfaces.
func StreamEvents(events EventSource, w http.ResponseWriter, r *http.Request) {
	c, ctx, err := accept(w, r)
	if err != nil {
		log.Error("Failed to accept client:", err)
		return
	}
	defer c.Close(websocket.StatusNormalClosure, "closing")

	connID := uuid.New().String()
	logger := log.WithField("connection", connID)
	logger.Info("Event stream client connected")
	defer logger.Info("Event stream client disconnected")

	// Create a new context that we can cancel.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, unsub := events.Subscribe()
	defer unsub()

	go func() {
		// Clients never send payloads; a read error means the connection
		// is gone.
		_, _, err := c.Read(ctx)
		if err != nil {
			cancel()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			msg := EventMessage{
				Type:          string(ev.Type),
				InterfaceName: ev.InterfaceName,
				LinkIndex:     ev.LinkIndex,
				Lladdr:        ev.LLAddr,
			}
			b, err := json.Marshal(msg)
			if err != nil {
				logger.WithError(err).Error("Failed to encode event")
				continue
			}
			if err := c.Write(ctx, websocket.MessageText, b); err != nil {
				return
			}
		}
	}
}
