// internal/coordinator/broadcast.go
package coordinator

import (
	"context"
	"time"

	"tictactoe-backend/internal/cache"
	"tictactoe-backend/internal/game"
	"tictactoe-backend/internal/lobby"
)

// GameInfo is one entry of the games broadcast. Clients spectate by quoting
// the exact {X, O} pair back.
type GameInfo struct {
	X string `json:"X"`
	O string `json:"O"`
}

// emitUserList sends each lobby member every other member's name in
// Directory insertion order. Self-exclusion is per recipient, not global.
// Called unconditionally after every inbound message, whether or not that
// message changed anything; a broadcast-all policy is simpler than dirty
// tracking and keeps every client consistent. Assumes the coordinator lock
// is held.
func (c *Coordinator) emitUserList() {
	for _, u := range c.directory.Members() {
		u.Conn.Write(lobby.Message{Type: "users", Message: c.directory.SnapshotExcluding(u.Conn)})
	}
}

// emitGameList advertises every active session to every lobby member.
// Assumes the coordinator lock is held.
func (c *Coordinator) emitGameList() {
	sessions := c.sessions.All()
	games := make([]GameInfo, 0, len(sessions))
	for _, s := range sessions {
		games = append(games, GameInfo{X: s.X.Name, O: s.O.Name})
	}
	for _, u := range c.directory.Members() {
		u.Conn.Write(lobby.Message{Type: "games", Message: games})
	}
}

// recordMatch queues a finished-match record for the history consumer.
// Fire-and-forget: publishing happens off the coordinator goroutine and a
// failure only logs. Disabled entirely when Redis is not connected.
func (c *Coordinator) recordMatch(s *game.Session, winner *game.Outcome) {
	if !cache.Enabled() {
		return
	}
	rec := cache.MatchRecord{
		SessionID: s.ID,
		XName:     s.X.Name,
		OName:     s.O.Name,
		Winner:    string(*winner),
		Board:     s.Board,
		Timestamp: time.Now().UnixMilli(),
	}
	go func(rec cache.MatchRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishMatchRecord(ctx, rec); err != nil {
			c.logger.Warnf("failed to publish match record for session %s: %v", rec.SessionID, err)
		}
	}(rec)
}
