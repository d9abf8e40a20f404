// internal/game/board.go
package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Mark is the symbol a player places on a board cell.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"
)

// Opponent returns the mark that moves after m.
func (m Mark) Opponent() Mark {
	if m == MarkX {
		return MarkO
	}
	return MarkX
}

// Outcome is the result of evaluating a finished board: a winning mark or a tie.
type Outcome string

const (
	OutcomeX   Outcome = "X"
	OutcomeO   Outcome = "O"
	OutcomeTie Outcome = "Tie"
)

// Board is a 3x3 grid in row-major order. The zero value is an empty board.
// A cell once marked never reverts to empty.
type Board [9]Mark

// The 8 winning lines: 3 rows, 3 columns, 2 diagonals.
var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner evaluates the board: the mark occupying a complete line, OutcomeTie
// when all 9 cells are marked, or nil while the game continues. If several
// lines are complete (a board that illegally continued past a win) the first
// line in row-major + diagonal scan order decides.
func (b Board) Winner() *Outcome {
	for _, line := range winningLines {
		m := b[line[0]]
		if m != "" && m == b[line[1]] && m == b[line[2]] {
			out := Outcome(m)
			return &out
		}
	}
	for _, c := range b {
		if c == "" {
			return nil
		}
	}
	tie := OutcomeTie
	return &tie
}

// ComputerMove marks a random unoccupied cell with the computer's mark (the
// computer always plays X) and returns the new board. It never overwrites an
// occupied cell; a full board is returned unchanged.
func ComputerMove(b Board) Board {
	free := make([]int, 0, len(b))
	for i, c := range b {
		if c == "" {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return b
	}
	b[free[rand.Intn(len(free))]] = MarkX
	return b
}

// MarshalJSON renders the wire format: marked cells as "X"/"O", empty cells
// as their own index so clients can address them while the array stays
// JSON-serializable.
func (b Board) MarshalJSON() ([]byte, error) {
	cells := make([]interface{}, len(b))
	for i, c := range b {
		if c == "" {
			cells[i] = i
		} else {
			cells[i] = string(c)
		}
	}
	return json.Marshal(cells)
}

// UnmarshalJSON parses the wire format. Any number is an empty cell; only
// "X" and "O" are accepted as marks.
func (b *Board) UnmarshalJSON(data []byte) error {
	var cells []interface{}
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	if len(cells) != len(b) {
		return fmt.Errorf("board must have %d cells, got %d", len(b), len(cells))
	}
	for i, cell := range cells {
		switch v := cell.(type) {
		case string:
			if Mark(v) != MarkX && Mark(v) != MarkO {
				return fmt.Errorf("invalid mark %q at cell %d", v, i)
			}
			b[i] = Mark(v)
		case float64:
			b[i] = ""
		default:
			return fmt.Errorf("invalid cell value %v at cell %d", cell, i)
		}
	}
	return nil
}
