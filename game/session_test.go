package game

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimaq12/termsweeper/models"
)

type recordingView struct {
	draws    int
	messages []string
}

func (v *recordingView) Draw(BoardView) {
	v.draws++
}

func (v *recordingView) Notify(message string) {
	v.messages = append(v.messages, message)
}

type scriptedPrompter struct {
	lines []string
}

func (p *scriptedPrompter) Prompt(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(p.lines) == 0 {
		return "", ErrInputClosed
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func newTestSession(t *testing.T, layout ...string) (*Session, *recordingView) {
	t.Helper()
	board, err := models.FromLayout(layout)
	require.NoError(t, err)
	view := &recordingView{}
	return NewSession(board, view, quietLogger()), view
}

func exposedCount(b BoardView) int {
	n := 0
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			if tile, _ := b.Tile(row, col); tile.Exposed() {
				n++
			}
		}
	}
	return n
}

var cornerMine = []string{
	"*...",
	"....",
	"....",
	"....",
}

func TestNewSessionHasID(t *testing.T) {
	a, _ := newTestSession(t, cornerMine...)
	b, _ := newTestSession(t, cornerMine...)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSessionMoveDispatches(t *testing.T) {
	s, view := newTestSession(t, cornerMine...)

	outcome, err := s.Move(Flag, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, models.Applied, outcome)
	tile, _ := s.Board().Tile(2, 2)
	assert.True(t, tile.Flagged())

	outcome, err = s.Move(Clear, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, models.Applied, outcome)
	tile, _ = s.Board().Tile(0, 1)
	assert.True(t, tile.Exposed())

	_, err = s.Move(MoveKind(7), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidMove)

	assert.Equal(t, 2, view.draws)
}

func TestSubmitWins(t *testing.T) {
	s, view := newTestSession(t, cornerMine...)

	status, err := s.Submit("C4d")
	require.NoError(t, err)
	assert.Equal(t, models.Won, status)
	assert.True(t, s.Over())
	assert.Equal(t, 16, exposedCount(s.Board()))
	assert.Equal(t, []string{WinMessage}, view.messages)
}

func TestSubmitLoses(t *testing.T) {
	s, view := newTestSession(t, cornerMine...)

	status, err := s.Submit("c1a")
	require.NoError(t, err)
	assert.Equal(t, models.Lost, status)
	assert.True(t, s.Over())
	assert.Equal(t, 16, exposedCount(s.Board()))
	assert.Equal(t, []string{LossMessage}, view.messages)
}

func TestSubmitRejectsWithoutMutation(t *testing.T) {
	testCases := []struct {
		input string
		err   error
	}{
		{"x1a", ErrInvalidMove},
		{"c", ErrInvalidMove},
		{"c0a", ErrOutOfBounds},
		{"c5a", ErrOutOfBounds},
		{"f1e", ErrOutOfBounds},
		{"c1z", ErrOutOfBounds},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			s, view := newTestSession(t, cornerMine...)

			status, err := s.Submit(tc.input)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, models.Open, status)
			assert.False(t, s.Over())
			assert.Zero(t, exposedCount(s.Board()))
			assert.Zero(t, s.Board().FlagCount())
			assert.Equal(t, 1, view.draws)
			require.Len(t, view.messages, 1)
		})
	}
}

func TestSubmitAfterGameOver(t *testing.T) {
	s, view := newTestSession(t, cornerMine...)
	_, err := s.Submit("c1a")
	require.NoError(t, err)
	draws := view.draws

	status, err := s.Submit("f2b")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, models.Lost, status)
	assert.Equal(t, draws, view.draws)
}

func TestSubmitFlagThenClear(t *testing.T) {
	s, _ := newTestSession(t,
		"*..",
		"...",
		"..*",
	)

	status, err := s.Submit("f2b")
	require.NoError(t, err)
	assert.Equal(t, models.Open, status)
	assert.Equal(t, 1, s.Board().FlagCount())

	status, err = s.Submit("c2b")
	require.NoError(t, err)
	assert.Equal(t, models.Open, status)
	tile, _ := s.Board().Tile(1, 1)
	assert.True(t, tile.Exposed())
	assert.Equal(t, 2, tile.NearbyMines())
}

func TestRunPlaysUntilWin(t *testing.T) {
	s, view := newTestSession(t, cornerMine...)
	in := &scriptedPrompter{lines: []string{"hello", "f1a", "c9a", "c4d", "c2b"}}

	status, err := s.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.Won, status)
	assert.Equal(t, []string{"c2b"}, in.lines)
	require.Len(t, view.messages, 3)
	assert.Equal(t, WinMessage, view.messages[2])
}

func TestRunStopsWhenInputCloses(t *testing.T) {
	s, _ := newTestSession(t, cornerMine...)

	status, err := s.Run(context.Background(), &scriptedPrompter{lines: []string{"f1a"}})
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, models.Open, status)
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newTestSession(t, cornerMine...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, &scriptedPrompter{lines: []string{"c4d"}})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, s.Over())
}

func TestRunWithConsole(t *testing.T) {
	s, _ := newTestSession(t, cornerMine...)
	var out strings.Builder
	console := NewConsole(strings.NewReader("c1a\nc4d\n"), &out, false)
	defer console.Close()
	s.view = console

	status, err := s.Run(context.Background(), console)
	require.NoError(t, err)
	assert.Equal(t, models.Lost, status)

	text := out.String()
	assert.Contains(t, text, Prompt)
	assert.Contains(t, text, "All your base are belong to us.")
	assert.Contains(t, text, "1 💥 1   ")
}

func TestConsoleCancelWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	console := NewConsole(pr, io.Discard, false)
	defer console.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := console.Prompt(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
