package server

import (
	"net/http"

	"golang.org/x/net/websocket"

	"tableside/internal/domain"
)

// wsFrame is the only inbound message kind: a joinTable signal
// subscribing the connection to that table's topic.
type wsFrame struct {
	Type    string `json:"type"`
	TableID string `json:"tableId,omitempty"`
}

// WSHandler upgrades the connection, subscribes it to the global topic
// and streams hub events until either side closes. Events published
// while a client is disconnected are not replayed; clients reconcile by
// re-fetching the REST listings on (re)connect.
func (h *Handlers) WSHandler() http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		sub := h.hub.Subscribe(domain.TopicGlobal)
		defer sub.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				var f wsFrame
				if err := websocket.JSON.Receive(conn, &f); err != nil {
					return
				}
				if f.Type == "joinTable" && f.TableID != "" {
					sub.Join(domain.TableTopic(f.TableID))
				}
			}
		}()

		for {
			select {
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				if err := websocket.JSON.Send(conn, ev); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
