// internal/coordinator/coordinator.go
package coordinator

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"tictactoe-backend/internal/game"
	"tictactoe-backend/internal/lobby"
)

// ClientMessage is the inbound wire envelope. The type field selects the
// handler; the remaining fields are populated per message kind.
type ClientMessage struct {
	Type   string      `json:"type"`
	Name   string      `json:"name,omitempty"`
	From   string      `json:"from,omitempty"`
	To     string      `json:"to,omitempty"`
	X      string      `json:"X,omitempty"`
	O      string      `json:"O,omitempty"`
	Player game.Mark   `json:"player,omitempty"`
	Board  *game.Board `json:"board,omitempty"`
}

// TurnPayload is the body of an outbound turn message. Winner stays null
// while the game continues.
type TurnPayload struct {
	Board  game.Board    `json:"board"`
	Next   game.Mark     `json:"next"`
	Winner *game.Outcome `json:"winner"`
}

// Coordinator owns all mutable shared state: who is online, who has
// challenged whom, which sessions are running and who is watching. It is the
// only component that mutates the Directory, ChallengeTable and SessionStore,
// always through their narrow operations, and it fans out fresh user/game
// snapshots after every inbound message. One coarse lock serializes every
// message and disconnect, so read-then-write sequences across the stores are
// atomic with respect to concurrent connections.
type Coordinator struct {
	mu         sync.Mutex
	directory  *lobby.Directory
	challenges *lobby.ChallengeTable
	sessions   *game.SessionStore
	logger     *logrus.Logger
}

// New builds a Coordinator with empty stores.
func New(logger *logrus.Logger) *Coordinator {
	return &Coordinator{
		directory:  lobby.NewDirectory(),
		challenges: lobby.NewChallengeTable(),
		sessions:   game.NewSessionStore(),
		logger:     logger,
	}
}

// HandleMessage is the single entry point for inbound protocol messages.
// Malformed payloads are logged and dropped, unknown types are silently
// ignored, and unresolved names are safe no-ops: a single connection's bad
// input never affects other connections' state. Every branch ends with a
// full user-list and game-list broadcast.
func (c *Coordinator) HandleMessage(conn *lobby.Conn, data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warnf("conn %s: dropping malformed message: %v", conn.ID, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.Type {
	case "enterLobby":
		c.enterLobby(conn, msg.Name)
	case "leaveLobby":
		c.leaveLobby(conn)
	case "challenge":
		c.challenge(msg.From, msg.To)
	case "cancelChallenge", "declineChallenge":
		c.withdrawChallenge(msg.Type, msg.From, msg.To)
	case "acceptChallenge":
		c.acceptChallenge(msg.From, msg.To)
	case "leaveGame":
		c.leaveGame(conn, msg.Name)
	case "spectate":
		c.sessions.AddSpectator(conn, msg.X, msg.O)
	case "startAI":
		c.startAI(conn)
	case "turn":
		c.turn(conn, msg)
	case "AITurn":
		c.aiTurn(conn, msg)
	default:
		// Unknown message types are ignored by design.
	}

	c.emitUserList()
	c.emitGameList()
}

// HandleDisconnect processes the transport's close notification: pending
// challenges touching the user are voided, an active session is abandoned
// (notifying the opponent), spectator entries are pruned and the user leaves
// the Directory. The connection's pump context is cancelled last so the
// writer stops even when removal was not driven by the socket itself.
// Running it for an already-removed connection is benign.
func (c *Coordinator) HandleDisconnect(conn *lobby.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if u := c.directory.FindByConn(conn); u != nil {
		c.challenges.DropAllFor(u)
	}
	c.sessions.Leave(conn)
	c.sessions.RemoveSpectator(conn)
	c.directory.Remove(conn)

	if conn.Cancel != nil {
		conn.Cancel()
	}

	c.emitUserList()
	c.emitGameList()
}

// NameTaken reports whether name is currently held by a lobby member. The
// check is informational only and does not reserve the name; enterLobby
// remains the source of truth.
func (c *Coordinator) NameTaken(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.directory.Find(name) != nil
}

func (c *Coordinator) enterLobby(conn *lobby.Conn, name string) {
	c.directory.Add(conn, name)
	// Personal snapshot first; the tail broadcast then refreshes everyone.
	conn.Write(lobby.Message{Type: "users", Message: c.directory.SnapshotExcluding(conn)})
}

func (c *Coordinator) leaveLobby(conn *lobby.Conn) {
	if u := c.directory.FindByConn(conn); u != nil {
		c.challenges.DropAllFor(u)
	}
	c.directory.Remove(conn)
}

func (c *Coordinator) challenge(fromName, toName string) {
	from := c.directory.Find(fromName)
	to := c.directory.Find(toName)
	if from == nil || to == nil {
		c.logger.Debugf("challenge %q -> %q ignored: not both in lobby", fromName, toName)
		return
	}
	c.challenges.Propose(from, to)
}

func (c *Coordinator) withdrawChallenge(msgType, fromName, toName string) {
	from := c.directory.Find(fromName)
	to := c.directory.Find(toName)
	if from == nil || to == nil {
		return
	}
	if !c.challenges.HasPair(from, to) {
		return
	}
	c.challenges.Withdraw(msgType, from, to)
}

// acceptChallenge resolves a pending challenge into a session. The accepting
// party sends {from: self, to: challenger}; accepting voids every other
// challenge either user was involved in, removes both from the lobby and
// seats the original challenger as X and the accepter as O. The challenger is
// notified with the accepter's name.
func (c *Coordinator) acceptChallenge(fromName, toName string) {
	accepter := c.directory.Find(fromName)
	challenger := c.directory.Find(toName)
	if accepter == nil || challenger == nil {
		return
	}
	if !c.challenges.HasPair(accepter, challenger) {
		return
	}

	c.challenges.DropAllFor(accepter)
	c.challenges.DropAllFor(challenger)
	c.directory.Remove(accepter.Conn)
	c.directory.Remove(challenger.Conn)

	c.sessions.Create(
		&game.Player{Name: challenger.Name, Conn: challenger.Conn},
		&game.Player{Name: accepter.Name, Conn: accepter.Conn},
	)
	challenger.Conn.Write(lobby.Message{Type: "acceptChallenge", Message: accepter.Name})
}

// leaveGame returns a player or spectator to the lobby. A playing opponent is
// notified and the session is destroyed; spectator entries are pruned either
// way.
func (c *Coordinator) leaveGame(conn *lobby.Conn, name string) {
	c.directory.Add(conn, name)
	c.sessions.Leave(conn)
	c.sessions.RemoveSpectator(conn)
}

// startAI moves a lobby member into a single-player session against the
// built-in opponent. The computer holds the X seat and has no connection.
func (c *Coordinator) startAI(conn *lobby.Conn) {
	u := c.directory.FindByConn(conn)
	if u == nil {
		return
	}
	c.challenges.DropAllFor(u)
	c.directory.Remove(conn)
	c.sessions.Create(game.NewComputerPlayer(), &game.Player{Name: u.Name, Conn: conn})
}

func (c *Coordinator) turn(conn *lobby.Conn, msg ClientMessage) {
	if msg.Board == nil {
		return
	}
	res := c.sessions.ApplyTurn(conn, msg.Player, *msg.Board)
	if res == nil {
		return
	}
	c.fanOutTurn(res)
}

func (c *Coordinator) aiTurn(conn *lobby.Conn, msg ClientMessage) {
	if msg.Board == nil {
		return
	}
	res := c.sessions.ApplyComputerTurn(conn, *msg.Board)
	if res == nil {
		return
	}
	c.fanOutTurn(res)
}

// fanOutTurn pushes the updated board to both players and all spectators and
// queues a match record once the session has a result.
func (c *Coordinator) fanOutTurn(res *game.TurnResult) {
	payload := TurnPayload{Board: res.Session.Board, Next: res.Next, Winner: res.Winner}
	for _, conn := range res.Session.Recipients() {
		conn.Write(lobby.Message{Type: "turn", Message: payload})
	}
	if res.Winner != nil {
		c.recordMatch(res.Session, res.Winner)
	}
}
