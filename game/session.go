package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dimaq12/termsweeper/models"
)

var (
	ErrOutOfBounds = errors.New("move is off the board")
	ErrGameOver    = errors.New("game is over")
	ErrInputClosed = errors.New("input closed")
)

// Session owns one board for the length of a game and drives it from player
// moves. It is not safe for concurrent use.
type Session struct {
	ID    uuid.UUID
	board *models.Board
	view  View
	log   logrus.FieldLogger
	moves int
	over  bool
}

func NewSession(board *models.Board, view View, log logrus.FieldLogger) *Session {
	id := uuid.New()
	return &Session{
		ID:    id,
		board: board,
		view:  view,
		log:   log.WithField("session", id.String()),
	}
}

func (s *Session) Board() BoardView {
	return s.board
}

func (s *Session) Status() models.Status {
	return s.board.Status()
}

// Over reports whether the game has ended and stopped taking moves.
func (s *Session) Over() bool {
	return s.over
}

// Start draws the initial board.
func (s *Session) Start() {
	s.log.WithFields(logrus.Fields{
		"rows":    s.board.Rows(),
		"cols":    s.board.Cols(),
		"density": s.board.Density(),
		"mines":   s.board.MineCount(),
	}).Info("session started")
	s.view.Draw(s.board)
}

// Move applies a clear or flag at 0-indexed coordinates and redraws.
func (s *Session) Move(kind MoveKind, row, col int) (models.Outcome, error) {
	var outcome models.Outcome
	switch kind {
	case Clear:
		outcome = s.board.Click(row, col)
	case Flag:
		outcome = s.board.Flag(row, col)
	default:
		return outcome, fmt.Errorf("%w: unknown kind %d", ErrInvalidMove, kind)
	}
	s.moves++

	s.log.WithFields(logrus.Fields{
		"kind":    kind,
		"row":     row,
		"col":     col,
		"outcome": outcome,
	}).Debug("move")
	s.view.Draw(s.board)
	return outcome, nil
}

// Submit handles one line of player input. Malformed or off-board moves are
// reported to the player and leave the board untouched. When the move ends the
// game the whole board is revealed and the result announced.
func (s *Session) Submit(line string) (models.Status, error) {
	if s.over {
		return s.board.Status(), ErrGameOver
	}

	move, err := ParseMove(line)
	if err == nil && !s.board.InBounds(move.Row, move.Col) {
		err = fmt.Errorf("%w: %s", ErrOutOfBounds, move)
	}
	if err == nil {
		_, err = s.Move(move.Kind, move.Row, move.Col)
	}
	if err != nil {
		s.log.WithError(err).WithField("input", line).Debug("move rejected")
		s.view.Draw(s.board)
		s.view.Notify(err.Error())
		return s.board.Status(), err
	}

	status := s.board.Status()
	if status.Terminal() {
		s.finish(status)
	}
	return status, nil
}

func (s *Session) finish(status models.Status) {
	s.over = true
	s.board.ExposeAll()
	s.view.Draw(s.board)

	if status == models.Won {
		s.view.Notify(WinMessage)
	} else {
		s.view.Notify(LossMessage)
	}

	s.log.WithFields(logrus.Fields{
		"status": status,
		"moves":  s.moves,
	}).Info("game finished")
}

// Run plays the game in line mode: draw, prompt, apply, repeat until the
// game ends, the input runs dry or ctx is cancelled.
func (s *Session) Run(ctx context.Context, in Prompter) (models.Status, error) {
	s.Start()
	for {
		line, err := in.Prompt(ctx)
		if err != nil {
			s.log.WithError(err).Info("session interrupted")
			return s.board.Status(), err
		}

		status, err := s.Submit(line)
		if err != nil {
			continue
		}
		if status.Terminal() {
			return status, nil
		}
	}
}
