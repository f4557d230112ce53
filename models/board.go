package models

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidDensity    = errors.New("mine density must be within [0, 100]")
	ErrInvalidLayout     = errors.New("invalid board layout")
)

// neighborOffsets lists the 8 neighbors in flood order: up-left, up,
// up-right, left, right, down-left, down-right, down.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 1}, {1, 0},
}

// Board is the mine field. Mines are placed once at construction and never
// move; everything else changes through Flag, Click, Expose and ExposeAll.
type Board struct {
	grid    [][]Tile
	rows    int
	cols    int
	density float64
	status  Status
}

func newBoard(rows, cols int) *Board {
	grid := make([][]Tile, rows)
	for i := range grid {
		grid[i] = make([]Tile, cols)
	}

	return &Board{
		grid: grid,
		rows: rows,
		cols: cols,
	}
}

// NewBoard builds a rows x cols board where every tile independently holds a
// mine with probability density/100. The mine total is not fixed: a board may
// hold no mines at all.
func NewBoard(rows, cols int, density float64, r *rand.Rand) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if !(density >= 0 && density <= 100) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDensity, density)
	}

	b := newBoard(rows, cols)
	b.density = density
	b.placeMinesRandomly(r)
	b.countNearbyMines()
	return b, nil
}

// FromLayout builds a board from a picture of its mines, one string per row:
// '*' marks a mine and '.' an empty tile.
func FromLayout(layout []string) (*Board, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidDimensions)
	}

	b := newBoard(len(layout), len(layout[0]))
	for row, line := range layout {
		if len(line) != b.cols {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d",
				ErrInvalidLayout, row, len(line), b.cols)
		}
		for col, ch := range []byte(line) {
			switch ch {
			case '*':
				b.grid[row][col].hasMine = true
			case '.':
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %d,%d", ErrInvalidLayout, ch, row, col)
			}
		}
	}
	b.density = 100 * float64(b.MineCount()) / float64(b.rows*b.cols)
	b.countNearbyMines()
	return b, nil
}

func (b *Board) placeMinesRandomly(r *rand.Rand) {
	for row := range b.grid {
		for col := range b.grid[row] {
			// Float64 is in [0, 1): density 0 never mines a tile, 100 always does.
			if r.Float64()*100 < b.density {
				b.grid[row][col].hasMine = true
			}
		}
	}
}

func (b *Board) countNearbyMines() {
	for row := range b.grid {
		for col := range b.grid[row] {
			if !b.grid[row][col].hasMine {
				continue
			}
			b.eachNeighbor(row, col, func(r, c int) {
				b.grid[r][c].nearbyMines++
			})
		}
	}
}

func (b *Board) eachNeighbor(row, col int, fn func(r, c int)) {
	for _, d := range neighborOffsets {
		if r, c := row+d[0], col+d[1]; b.InBounds(r, c) {
			fn(r, c)
		}
	}
}

func (b *Board) Rows() int {
	return b.rows
}

func (b *Board) Cols() int {
	return b.cols
}

// Density is the mine probability, in percent, the board was generated with.
func (b *Board) Density() float64 {
	return b.density
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Tile returns a copy of the tile at row, col.
func (b *Board) Tile(row, col int) (Tile, bool) {
	if !b.InBounds(row, col) {
		return Tile{}, false
	}
	return b.grid[row][col], true
}

func (b *Board) MineCount() int {
	n := 0
	for row := range b.grid {
		for col := range b.grid[row] {
			if b.grid[row][col].hasMine {
				n++
			}
		}
	}
	return n
}

func (b *Board) FlagCount() int {
	n := 0
	for row := range b.grid {
		for col := range b.grid[row] {
			if b.grid[row][col].flagged {
				n++
			}
		}
	}
	return n
}

// Flag toggles the flag on a hidden tile.
func (b *Board) Flag(row, col int) Outcome {
	if !b.InBounds(row, col) {
		return OutOfBounds
	}
	tile := &b.grid[row][col]
	if tile.exposed {
		return AlreadyExposed
	}
	tile.toggleFlag()
	return Applied
}

// Click reveals a tile. Hitting a mine loses the game without exposing the
// tile; anything else is flood-exposed. Flags do not protect a tile.
func (b *Board) Click(row, col int) Outcome {
	if !b.InBounds(row, col) {
		return OutOfBounds
	}
	tile := &b.grid[row][col]
	if tile.hasMine {
		if b.status == Open {
			b.status = Lost
		}
		return Detonated
	}
	if tile.exposed {
		return AlreadyExposed
	}
	b.Expose(row, col)
	return Applied
}

// Expose reveals the tile at row, col and, when it has no mines around it,
// keeps revealing outward until numbered tiles bound the region. It returns
// how many tiles were newly exposed.
func (b *Board) Expose(row, col int) int {
	if !b.InBounds(row, col) || b.grid[row][col].exposed {
		return 0
	}

	var (
		stack   = [][2]int{{row, col}}
		exposed = 0
	)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tile := &b.grid[p[0]][p[1]]
		if tile.exposed {
			continue
		}
		tile.exposed = true
		exposed++

		if tile.nearbyMines > 0 {
			continue
		}
		// Pushed in reverse so neighbors pop in neighborOffsets order.
		for i := len(neighborOffsets) - 1; i >= 0; i-- {
			r, c := p[0]+neighborOffsets[i][0], p[1]+neighborOffsets[i][1]
			if b.InBounds(r, c) && !b.grid[r][c].exposed {
				stack = append(stack, [2]int{r, c})
			}
		}
	}
	return exposed
}

// ExposeAll reveals every tile. Only meant for a finished game.
func (b *Board) ExposeAll() {
	for row := range b.grid {
		for col := range b.grid[row] {
			b.grid[row][col].exposed = true
		}
	}
}

// Status reports the game state. Won and Lost are final; while Open, the
// board is scanned and becomes Won once every non-mine tile is exposed.
func (b *Board) Status() Status {
	if b.status.Terminal() {
		return b.status
	}

	for row := range b.grid {
		for col := range b.grid[row] {
			tile := b.grid[row][col]
			if !tile.hasMine && !tile.exposed {
				return Open
			}
		}
	}
	b.status = Won
	return b.status
}
