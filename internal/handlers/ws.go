// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"tictactoe-backend/internal/coordinator"
	"tictactoe-backend/internal/lobby"
	"tictactoe-backend/internal/middleware"
)

// Per-connection inbound message budget. A well-behaved client sends a
// handful of messages per turn; anything past this is dropped.
const (
	inboundRate  rate.Limit = 20
	inboundBurst            = 40
)

// WSHandler upgrades the HTTP connection to WebSocket and bridges it to the
// coordinator: inbound frames become coordinator messages, the connection's
// OutChan drains through the write pump, and the transport close notification
// becomes the coordinator's disconnect event.
func WSHandler(logger *logrus.Logger, coord *coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"tictactoe"},
			OriginPatterns: []string{"*"}, // Adjust in production.
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "tictactoe" {
			c.Close(BadSubprotocolError, "client must speak the tictactoe subprotocol")
			return
		}
		conn := lobby.NewConn()
		middleware.LogConnect(logger, conn.ID, remoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		conn.Cancel = cancel
		defer cancel()

		go writePump(ctx, c, conn, logger)

		// Blocks until the connection closes or errors.
		err = readPump(ctx, c, conn, coord, logger)

		middleware.LogDisconnect(logger, conn.ID, remoteAddr, err)
		coord.HandleDisconnect(conn)
	}
}

// readPump reads frames off the socket and feeds them to the coordinator.
// Non-text frames and rate-limit overruns are dropped without touching state.
func readPump(ctx context.Context, c *websocket.Conn, conn *lobby.Conn, coord *coordinator.Coordinator, logger *logrus.Logger) error {
	limiter := rate.NewLimiter(inboundRate, inboundBurst)

	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("conn %s: closed normally", conn.ID)
				return nil
			}
			if strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			logger.Warnf("conn %s: read error: %v (CloseStatus: %d)", conn.ID, err, status)
			return err
		}

		if typ != websocket.MessageText {
			logger.Warnf("conn %s: ignoring non-text message type %d", conn.ID, typ)
			continue
		}
		if !limiter.Allow() {
			logger.Warnf("conn %s: message rate limit exceeded, dropping message", conn.ID)
			continue
		}

		coord.HandleMessage(conn, data)
	}
}

// writePump drains the connection's outbound queue onto the socket and keeps
// the connection alive with periodic pings. Exits on write/ping failure; the
// read pump then observes the closure and triggers disconnect handling.
func writePump(ctx context.Context, c *websocket.Conn, conn *lobby.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-conn.OutChan:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Warnf("conn %s: failed to marshal outgoing %q message: %v", conn.ID, msg.Type, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("conn %s: write failed: %v", conn.ID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("conn %s: ping failed, assuming disconnect: %v", conn.ID, err)
				return
			}
		}
	}
}
