// internal/lobby/challenges.go
package lobby

import "github.com/google/uuid"

// Challenge is a pending 1:1 proposal from one lobby member to another. Each
// entry carries its own id so matching never depends on struct identity.
type Challenge struct {
	ID   uuid.UUID
	From *User
	To   *User
}

// ChallengeTable tracks pending challenges between Directory members. Owned
// by the coordinator, touched only under its lock. Entries only ever
// reference users currently in the Directory; the coordinator drops them when
// either side leaves the lobby or disconnects.
type ChallengeTable struct {
	challenges []*Challenge
}

// NewChallengeTable returns an empty ChallengeTable.
func NewChallengeTable() *ChallengeTable {
	return &ChallengeTable{}
}

// Propose records a challenge from one member to another and notifies the
// target with the challenger's name.
func (t *ChallengeTable) Propose(from, to *User) *Challenge {
	ch := &Challenge{ID: uuid.New(), From: from, To: to}
	t.challenges = append(t.challenges, ch)
	to.Conn.Write(Message{Type: "challenge", Message: from.Name})
	return ch
}

// Withdraw removes every challenge pairing the two users in either role and
// notifies the counterpart. msgType is echoed back as the notification type
// so cancel and decline share one path ("cancelChallenge"/"declineChallenge").
func (t *ChallengeTable) Withdraw(msgType string, from, to *User) {
	kept := t.challenges[:0]
	for _, ch := range t.challenges {
		if t.pairs(ch, from, to) {
			continue
		}
		kept = append(kept, ch)
	}
	t.challenges = kept
	to.Conn.Write(Message{Type: msgType, Message: from.Name})
}

// HasPair reports whether any pending challenge pairs the two users, in
// either orientation.
func (t *ChallengeTable) HasPair(a, b *User) bool {
	for _, ch := range t.challenges {
		if t.pairs(ch, a, b) {
			return true
		}
	}
	return false
}

// DropAllFor removes every challenge touching u in either role, without
// notifications. Accepting a challenge or leaving the lobby voids all other
// proposals the user was involved in.
func (t *ChallengeTable) DropAllFor(u *User) {
	kept := t.challenges[:0]
	for _, ch := range t.challenges {
		if ch.From.Conn.ID == u.Conn.ID || ch.To.Conn.ID == u.Conn.ID {
			continue
		}
		kept = append(kept, ch)
	}
	t.challenges = kept
}

// Len returns the number of pending challenges.
func (t *ChallengeTable) Len() int {
	return len(t.challenges)
}

func (t *ChallengeTable) pairs(ch *Challenge, a, b *User) bool {
	return (ch.From.Conn.ID == a.Conn.ID && ch.To.Conn.ID == b.Conn.ID) ||
		(ch.From.Conn.ID == b.Conn.ID && ch.To.Conn.ID == a.Conn.ID)
}
