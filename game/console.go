package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/dimaq12/termsweeper/models"
)

const clearScreen = "\033[H\033[2J"

var countColors = map[int]lipgloss.Color{
	1: lipgloss.Color("12"),
	2: lipgloss.Color("10"),
	3: lipgloss.Color("9"),
	4: lipgloss.Color("13"),
	5: lipgloss.Color("11"),
	6: lipgloss.Color("14"),
	7: lipgloss.Color("15"),
	8: lipgloss.Color("8"),
}

// Console is the line-mode front end: it prints the board as text and reads
// one command per line.
type Console struct {
	out   io.Writer
	clear bool

	lines     chan string
	done      chan struct{}
	closeOnce sync.Once

	hidden lipgloss.Style
	flag   lipgloss.Style
	mine   lipgloss.Style
	counts map[int]lipgloss.Style
}

// NewConsole starts reading lines from in. Close stops the reader once it is
// no longer needed.
func NewConsole(in io.Reader, out io.Writer, clear bool) *Console {
	renderer := lipgloss.NewRenderer(out)
	c := &Console{
		out:    out,
		clear:  clear,
		lines:  make(chan string),
		done:   make(chan struct{}),
		hidden: renderer.NewStyle().Foreground(lipgloss.Color("8")),
		flag:   renderer.NewStyle().Foreground(lipgloss.Color("11")),
		mine:   renderer.NewStyle().Foreground(lipgloss.Color("9")),
		counts: make(map[int]lipgloss.Style, len(countColors)),
	}
	for n, color := range countColors {
		c.counts[n] = renderer.NewStyle().Foreground(color)
	}

	go c.readLines(in)
	return c
}

func (c *Console) readLines(in io.Reader) {
	defer close(c.lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.done:
			return
		}
	}
}

func (c *Console) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Console) Prompt(ctx context.Context) (string, error) {
	fmt.Fprint(c.out, "\n"+Prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return line, nil
	}
}

func (c *Console) Notify(message string) {
	fmt.Fprintf(c.out, "\n%s\n", message)
}

func (c *Console) Draw(board BoardView) {
	var (
		sb    strings.Builder
		width = len(fmt.Sprint(board.Rows()))
	)
	if c.clear {
		sb.WriteString(clearScreen)
	}
	fmt.Fprintf(&sb, "\n%s\n\n%s\n\n", Title, Usage)

	sb.WriteString(strings.Repeat(" ", width+1))
	for col := 0; col < board.Cols(); col++ {
		sb.WriteString(ColumnLabel(col) + " ")
	}
	sb.WriteString("\n")

	for row := 0; row < board.Rows(); row++ {
		fmt.Fprintf(&sb, "%*d ", width, row+1)
		for col := 0; col < board.Cols(); col++ {
			tile, _ := board.Tile(row, col)
			sb.WriteString(c.styleFor(tile).Render(Glyph(tile)))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	fmt.Fprint(c.out, sb.String())
}

func (c *Console) styleFor(tile models.Tile) lipgloss.Style {
	switch {
	case tile.Exposed() && tile.HasMine():
		return c.mine
	case tile.Exposed():
		if s, ok := c.counts[tile.NearbyMines()]; ok {
			return s
		}
		return c.hidden
	case tile.Flagged():
		return c.flag
	default:
		return c.hidden
	}
}
