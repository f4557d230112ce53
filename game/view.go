package game

import (
	"context"
	"strconv"

	"github.com/dimaq12/termsweeper/models"
)

const (
	Title       = "Minesweeper v1.0.0"
	Usage       = "To play use [C|F][row][col]. 'C': clear, 'F': flag. E.g. C5b"
	Prompt      = "Move? "
	WinMessage  = "You won!!"
	LossMessage = "Somebody set up us the bomb.\nAll your base are belong to us."
)

// BoardView is the read-only side of a board handed to presenters.
type BoardView interface {
	Rows() int
	Cols() int
	Tile(row, col int) (models.Tile, bool)
	MineCount() int
	FlagCount() int
}

// View draws the board and shows messages to the player.
type View interface {
	Draw(board BoardView)
	Notify(message string)
}

// Prompter blocks until the player enters one line.
type Prompter interface {
	Prompt(ctx context.Context) (string, error)
}

// Glyph is the single-character picture of a tile.
func Glyph(t models.Tile) string {
	switch {
	case t.Exposed() && t.HasMine():
		return "💥"
	case t.Exposed() && t.NearbyMines() > 0:
		return strconv.Itoa(t.NearbyMines())
	case t.Exposed():
		return " "
	case t.Flagged():
		return "⚑"
	default:
		return "-"
	}
}
