// internal/lobby/connection.go
package lobby

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Message is the outbound wire envelope: {type, message?}.
type Message struct {
	Type    string      `json:"type"`
	Message interface{} `json:"message,omitempty"`
}

// Conn is the coordinator's handle to one client connection. The transport
// layer owns the socket lifecycle; the coordinator only queues outbound
// messages on OutChan and learns about closure through its own disconnect
// notification. The ID is the connection's identity everywhere in the stores.
// Cancel tears down the transport's pump context; the coordinator invokes it
// when the connection is removed.
type Conn struct {
	ID      uuid.UUID
	OutChan chan Message
	Cancel  context.CancelFunc
}

// NewConn allocates a connection handle with a fresh identity and a buffered
// outbound queue.
func NewConn() *Conn {
	return &Conn{
		ID:      uuid.New(),
		OutChan: make(chan Message, 32),
	}
}

// Write queues msg without blocking so one slow client can never stall the
// coordinator. Messages to a full or abandoned queue are dropped; send
// failures are not propagated back into state.
func (c *Conn) Write(msg Message) {
	select {
	case c.OutChan <- msg:
	default:
		logrus.Warnf("conn %s: out channel full or closed, dropped %q message", c.ID, msg.Type)
	}
}
