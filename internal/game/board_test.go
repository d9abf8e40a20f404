// internal/game/board_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countMarks(b Board) int {
	n := 0
	for _, c := range b {
		if c != "" {
			n++
		}
	}
	return n
}

func TestWinnerLines(t *testing.T) {
	lines := [][3]int{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
		{0, 4, 8}, {2, 4, 6}, // diagonals
	}
	for _, mark := range []Mark{MarkX, MarkO} {
		for _, line := range lines {
			var b Board
			for _, i := range line {
				b[i] = mark
			}
			got := b.Winner()
			require.NotNil(t, got, "line %v for %s", line, mark)
			assert.Equal(t, Outcome(mark), *got, "line %v", line)
		}
	}
}

func TestWinnerInProgress(t *testing.T) {
	var empty Board
	assert.Nil(t, empty.Winner())

	partial := Board{MarkO, MarkX, "", "", MarkO, "", "", "", MarkX}
	assert.Nil(t, partial.Winner())
}

func TestWinnerTie(t *testing.T) {
	b := Board{
		MarkX, MarkO, MarkX,
		MarkX, MarkO, MarkO,
		MarkO, MarkX, MarkX,
	}
	got := b.Winner()
	require.NotNil(t, got)
	assert.Equal(t, OutcomeTie, *got)
}

// A board that illegally continued past a win still yields exactly one
// result: the first complete line in scan order.
func TestWinnerScanOrderOnIllegalBoard(t *testing.T) {
	b := Board{
		MarkX, MarkX, MarkX,
		MarkO, MarkO, MarkO,
		"", "", "",
	}
	got := b.Winner()
	require.NotNil(t, got)
	assert.Equal(t, OutcomeX, *got)
}

// Winner is total and deterministic over every one of the 3^9 cell fillings.
func TestWinnerTotality(t *testing.T) {
	marks := []Mark{"", MarkX, MarkO}
	for n := 0; n < 19683; n++ {
		var b Board
		v := n
		for i := range b {
			b[i] = marks[v%3]
			v /= 3
		}
		first := b.Winner()
		second := b.Winner()
		if first == nil {
			assert.Nil(t, second)
			assert.Less(t, countMarks(b), 9, "full board must not continue")
			continue
		}
		require.NotNil(t, second)
		assert.Equal(t, *first, *second)
		assert.Contains(t, []Outcome{OutcomeX, OutcomeO, OutcomeTie}, *first)
	}
}

func TestComputerMoveAddsExactlyOneMark(t *testing.T) {
	boards := []Board{
		{},
		{MarkO},
		{MarkO, MarkX, "", MarkO, "", "", MarkX, "", ""},
		{MarkO, MarkX, MarkO, MarkX, MarkO, MarkX, MarkO, MarkX, ""},
	}
	for _, b := range boards {
		// The chosen cell is random; every pick must honor the contract.
		for i := 0; i < 50; i++ {
			moved := ComputerMove(b)
			assert.Equal(t, countMarks(b)+1, countMarks(moved))
			for j := range b {
				if b[j] != "" {
					assert.Equal(t, b[j], moved[j], "occupied cell %d overwritten", j)
				} else if moved[j] != "" {
					assert.Equal(t, MarkX, moved[j], "computer must play X")
				}
			}
		}
	}
}

func TestComputerMoveFullBoard(t *testing.T) {
	full := Board{
		MarkX, MarkO, MarkX,
		MarkX, MarkO, MarkO,
		MarkO, MarkX, MarkX,
	}
	assert.Equal(t, full, ComputerMove(full))
}

func TestBoardJSONRoundTrip(t *testing.T) {
	wire := `["O",1,2,3,4,5,6,7,8]`
	var b Board
	require.NoError(t, json.Unmarshal([]byte(wire), &b))
	assert.Equal(t, Board{MarkO}, b)

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, wire, string(out))
}

func TestBoardJSONFreshBoard(t *testing.T) {
	var b Board
	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `[0,1,2,3,4,5,6,7,8]`, string(out))
}

func TestBoardJSONRejectsBadInput(t *testing.T) {
	var b Board
	assert.Error(t, json.Unmarshal([]byte(`["Z",1,2,3,4,5,6,7,8]`), &b), "unknown mark")
	assert.Error(t, json.Unmarshal([]byte(`[0,1,2]`), &b), "short board")
	assert.Error(t, json.Unmarshal([]byte(`[true,1,2,3,4,5,6,7,8]`), &b), "bad cell type")
}
