package game

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidMove = errors.New("invalid move")

type MoveKind int

const (
	Clear MoveKind = iota
	Flag
)

func (k MoveKind) String() string {
	switch k {
	case Clear:
		return "clear"
	case Flag:
		return "flag"
	default:
		return "unknown"
	}
}

// Move is a parsed player command with 0-indexed coordinates.
type Move struct {
	Kind MoveKind
	Row  int
	Col  int
}

func (m Move) String() string {
	return fmt.Sprintf("%s %d%s", m.Kind, m.Row+1, ColumnLabel(m.Col))
}

// movePattern matches <c|f><row><col-letter>, e.g. "c5b".
var movePattern = regexp.MustCompile(`^([cf])([0-9]+)([a-z])$`)

// ParseMove turns a command such as "C5b" into a Move. Rows are 1-indexed and
// columns are letters starting at 'a'. Coordinates are not checked against
// any board.
func ParseMove(line string) (Move, error) {
	m := movePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(line)))
	if m == nil {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, line)
	}

	row, err := strconv.Atoi(m[2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrInvalidMove, line, err)
	}

	kind := Clear
	if m[1] == "f" {
		kind = Flag
	}
	return Move{
		Kind: kind,
		Row:  row - 1,
		Col:  int(m[3][0] - 'a'),
	}, nil
}

// ColumnLabel is the letter players use for a 0-indexed column.
func ColumnLabel(col int) string {
	if col < 0 || col >= 26 {
		return "?"
	}
	return string(rune('a' + col))
}
