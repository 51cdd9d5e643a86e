package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"eventgallery/internal/dto"
	"eventgallery/internal/logger"
	"eventgallery/internal/service/session"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	// pingPeriod must be shorter than pongWait.
	pingPeriod = pongWait * 9 / 10
)

// Upgrader upgrades HTTP connections to WebSocket; CheckOrigin allows all origins.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SessionOpener starts gallery sessions.
type SessionOpener interface {
	Open(ctx context.Context) (*session.Session, error)
	Close(id string)
}

// GalleryWebsocketHandler runs one gallery session per connection: actions
// read from the socket go to the session, view updates go back.
func GalleryWebsocketHandler(manager SessionOpener, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		defer connection.Close()

		s, err := manager.Open(context.Background())
		if err != nil {
			logger.Error("Unable to open gallery session: %v", err)
			connection.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session unavailable"))
			return
		}
		defer manager.Close(s.ID)

		writerDone := make(chan struct{})
		go func() {
			defer close(writerDone)
			writeUpdates(connection, s, logger)
		}()

		connection.SetReadDeadline(time.Now().Add(pongWait))
		connection.SetPongHandler(func(string) error {
			return connection.SetReadDeadline(time.Now().Add(pongWait))
		})

		for {
			var action dto.ViewAction
			if err := connection.ReadJSON(&action); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Info("Viewer %s disconnected normally", s.ID)
				} else {
					logger.Warning("Viewer %s disconnected: %v", s.ID, err)
				}
				break
			}
			if err := s.Dispatch(r.Context(), action); err != nil {
				logger.Warning("Dropping action for session %s: %v", s.ID, err)
				break
			}
		}

		manager.Close(s.ID)
		<-writerDone
	}
}

// writeUpdates is the only writer of the connection.
func writeUpdates(connection *websocket.Conn, s *session.Session, logger *logger.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-s.Updates():
			if !ok {
				connection.SetWriteDeadline(time.Now().Add(writeWait))
				connection.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := connection.WriteJSON(update); err != nil {
				logger.Error("Error sending view update: %v", err)
				connection.Close()
				// keep draining so the session loop never blocks on us
				for range s.Updates() {
				}
				return
			}
		case <-ticker.C:
			connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				connection.Close()
				for range s.Updates() {
				}
				return
			}
		}
	}
}
