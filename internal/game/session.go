// internal/game/session.go
package game

import (
	"github.com/google/uuid"

	"tictactoe-backend/internal/lobby"
)

// ComputerName is the display name of the built-in opponent.
const ComputerName = "Computer"

// Player is one side of a session. The computer opponent is a Player with no
// connection; fan-out must skip it.
type Player struct {
	Name string
	Conn *lobby.Conn
}

// IsComputer reports whether this side is the built-in opponent.
func (p *Player) IsComputer() bool {
	return p.Conn == nil
}

// NewComputerPlayer returns the synthetic X side for single-player matches.
func NewComputerPlayer() *Player {
	return &Player{Name: ComputerName}
}

// Session is one running match: the board, the X and O sides, and the
// connections watching it. X is the original challenger (or the computer);
// O is the side that accepted (or the human in a computer match).
type Session struct {
	ID         uuid.UUID
	Board      Board
	X          *Player
	O          *Player
	Spectators map[uuid.UUID]*lobby.Conn
}

// NewSession starts a match with a fresh board and no spectators.
func NewSession(x, o *Player) *Session {
	return &Session{
		ID:         uuid.New(),
		X:          x,
		O:          o,
		Spectators: make(map[uuid.UUID]*lobby.Conn),
	}
}

// HasPlayer reports whether conn is the X or O side of this session.
func (s *Session) HasPlayer(conn *lobby.Conn) bool {
	return (s.X.Conn != nil && s.X.Conn.ID == conn.ID) ||
		(s.O.Conn != nil && s.O.Conn.ID == conn.ID)
}

// Opponent returns the other side for conn, or nil if conn is not a player.
func (s *Session) Opponent(conn *lobby.Conn) *Player {
	if s.X.Conn != nil && s.X.Conn.ID == conn.ID {
		return s.O
	}
	if s.O.Conn != nil && s.O.Conn.ID == conn.ID {
		return s.X
	}
	return nil
}

// Recipients returns every live connection that should see board updates:
// both players (skipping the computer) and all spectators.
func (s *Session) Recipients() []*lobby.Conn {
	conns := make([]*lobby.Conn, 0, 2+len(s.Spectators))
	if s.X.Conn != nil {
		conns = append(conns, s.X.Conn)
	}
	if s.O.Conn != nil {
		conns = append(conns, s.O.Conn)
	}
	for _, c := range s.Spectators {
		conns = append(conns, c)
	}
	return conns
}
