// internal/lobby/challenges_test.go
package lobby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(conn *Conn) []Message {
	var msgs []Message
	for {
		select {
		case m := <-conn.OutChan:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func twoUsers() (*User, *User) {
	return &User{Name: "alice", Conn: NewConn()}, &User{Name: "bob", Conn: NewConn()}
}

func TestProposeNotifiesTarget(t *testing.T) {
	tbl := NewChallengeTable()
	alice, bob := twoUsers()

	tbl.Propose(alice, bob)
	require.Equal(t, 1, tbl.Len())
	assert.True(t, tbl.HasPair(alice, bob))
	assert.True(t, tbl.HasPair(bob, alice), "pairing is orientation-free")

	msgs := drain(bob.Conn)
	require.Len(t, msgs, 1)
	assert.Equal(t, "challenge", msgs[0].Type)
	assert.Equal(t, "alice", msgs[0].Message)
}

func TestWithdrawMatchesEitherRole(t *testing.T) {
	tbl := NewChallengeTable()
	alice, bob := twoUsers()
	tbl.Propose(alice, bob)

	// Bob declines: from/to arrive reversed relative to the proposal.
	tbl.Withdraw("declineChallenge", bob, alice)
	assert.Equal(t, 0, tbl.Len())

	msgs := drain(alice.Conn)
	require.Len(t, msgs, 1)
	assert.Equal(t, "declineChallenge", msgs[0].Type)
	assert.Equal(t, "bob", msgs[0].Message)
}

func TestDropAllForVoidsEveryEntry(t *testing.T) {
	tbl := NewChallengeTable()
	alice, bob := twoUsers()
	carol := &User{Name: "carol", Conn: NewConn()}

	tbl.Propose(alice, bob)
	tbl.Propose(carol, alice)
	tbl.Propose(carol, bob)
	require.Equal(t, 3, tbl.Len())

	tbl.DropAllFor(alice)
	assert.Equal(t, 1, tbl.Len())
	assert.True(t, tbl.HasPair(carol, bob))
	assert.False(t, tbl.HasPair(alice, bob))
}
