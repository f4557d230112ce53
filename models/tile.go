package models

// Tile is a single cell of the board. Its fields are unexported so that only
// the Board can mutate them; presenters receive copies.
type Tile struct {
	hasMine     bool
	flagged     bool
	exposed     bool
	nearbyMines int
}

func (t Tile) HasMine() bool {
	return t.hasMine
}

func (t Tile) Flagged() bool {
	return t.flagged
}

func (t Tile) Exposed() bool {
	return t.exposed
}

// NearbyMines is the number of mines among the tile's up to 8 neighbors.
func (t Tile) NearbyMines() int {
	return t.nearbyMines
}

func (t *Tile) toggleFlag() {
	t.flagged = !t.flagged
}
