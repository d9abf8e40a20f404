// internal/game/session_store.go
package game

import (
	"tictactoe-backend/internal/lobby"

	"github.com/google/uuid"
)

// SessionStore holds the active sessions. It is owned by the coordinator and
// touched only under its lock; linear scans are fine at the session counts a
// single lobby produces.
type SessionStore struct {
	sessions []*Session
}

// NewSessionStore returns an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Create starts a session between x and o with an empty board.
func (st *SessionStore) Create(x, o *Player) *Session {
	s := NewSession(x, o)
	st.sessions = append(st.sessions, s)
	return s
}

// All returns the active sessions in creation order. Callers must not mutate
// the slice; the coordinator lock covers iteration.
func (st *SessionStore) All() []*Session {
	return st.sessions
}

// FindByConn returns the session conn plays in and the opposing side, or
// nil/nil. Spectating does not match; only the X and O seats do.
func (st *SessionStore) FindByConn(conn *lobby.Conn) (*Session, *Player) {
	for _, s := range st.sessions {
		if s.HasPlayer(conn) {
			return s, s.Opponent(conn)
		}
	}
	return nil, nil
}

// FindByNames locates the session whose X and O names both match exactly.
func (st *SessionStore) FindByNames(xName, oName string) *Session {
	for _, s := range st.sessions {
		if s.X.Name == xName && s.O.Name == oName {
			return s
		}
	}
	return nil
}

// AddSpectator registers conn on the session matching both names and
// immediately sends it the in-progress board, so late joiners never see a
// blank grid. Unknown name pairs are a no-op.
func (st *SessionStore) AddSpectator(conn *lobby.Conn, xName, oName string) {
	s := st.FindByNames(xName, oName)
	if s == nil {
		return
	}
	s.Spectators[conn.ID] = conn
	conn.Write(lobby.Message{Type: "spectate", Message: s.Board})
}

// RemoveSpectator drops conn from every session's spectator set. Called on
// disconnect and on leaveGame so dead spectator entries never accumulate.
func (st *SessionStore) RemoveSpectator(conn *lobby.Conn) {
	for _, s := range st.sessions {
		delete(s.Spectators, conn.ID)
	}
}

// TurnResult is the outcome of applying a move to a session.
type TurnResult struct {
	Session *Session
	Winner  *Outcome
	Next    Mark
}

// ApplyTurn stores the client-submitted board verbatim as the session state
// and evaluates it. The server trusts the client for cell placement: the
// board is not validated as a one-move delta from the previous state. Returns
// nil when conn has no active session.
func (st *SessionStore) ApplyTurn(conn *lobby.Conn, mover Mark, b Board) *TurnResult {
	s, _ := st.FindByConn(conn)
	if s == nil {
		return nil
	}
	s.Board = b
	return &TurnResult{Session: s, Winner: b.Winner(), Next: mover.Opponent()}
}

// ApplyComputerTurn lets the computer mark a cell on the submitted board and
// stores the result. The winner is evaluated against the post-move board, so
// a line the computer just completed is reported on the same turn. Returns
// nil when conn has no active session.
func (st *SessionStore) ApplyComputerTurn(conn *lobby.Conn, b Board) *TurnResult {
	s, _ := st.FindByConn(conn)
	if s == nil {
		return nil
	}
	moved := ComputerMove(b)
	s.Board = moved
	return &TurnResult{Session: s, Winner: moved.Winner(), Next: MarkO}
}

// Leave removes conn's session unconditionally, notifying a connected
// opponent of the abandonment first. A connection with no session is a
// benign no-op.
func (st *SessionStore) Leave(conn *lobby.Conn) {
	s, opp := st.FindByConn(conn)
	if s == nil {
		return
	}
	if opp != nil && opp.Conn != nil {
		opp.Conn.Write(lobby.Message{Type: "leaveGame"})
	}
	st.remove(s.ID)
}

func (st *SessionStore) remove(id uuid.UUID) {
	for i, s := range st.sessions {
		if s.ID == id {
			st.sessions = append(st.sessions[:i], st.sessions[i+1:]...)
			return
		}
	}
}
