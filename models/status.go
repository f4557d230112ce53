package models

type Status int

const (
	Open Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further moves can change the status.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// Outcome describes what a Flag or Click call did to the board.
type Outcome int

const (
	Applied Outcome = iota
	OutOfBounds
	AlreadyExposed
	Detonated
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case OutOfBounds:
		return "out of bounds"
	case AlreadyExposed:
		return "already exposed"
	case Detonated:
		return "detonated"
	default:
		return "unknown"
	}
}
