package game

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var countTextColors = map[int]tcell.Color{
	1: tcell.ColorBlue,
	2: tcell.ColorGreen,
	3: tcell.ColorRed,
	4: tcell.ColorPurple,
	5: tcell.ColorMaroon,
	6: tcell.ColorTeal,
	7: tcell.ColorWhite,
	8: tcell.ColorGray,
}

// Renderer is the tview front end: the board as a table, a status line and
// the move prompt. Row 0 and column 0 of the table hold the labels.
type Renderer struct {
	boardTable *tview.Table
	status     *tview.TextView
	input      *tview.InputField
	layout     *tview.Flex
}

func NewRenderer() *Renderer {
	r := &Renderer{
		boardTable: tview.NewTable(),
		status:     tview.NewTextView(),
		input:      tview.NewInputField(),
	}

	r.boardTable.SetBorder(true).SetTitle(" " + Title + " ")
	r.status.SetText(Usage)
	r.input.SetLabel(Prompt).SetFieldWidth(8)

	r.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(r.boardTable, 0, 1, false).
		AddItem(r.status, 2, 0, false).
		AddItem(r.input, 1, 0, true)
	return r
}

func (r *Renderer) Layout() tview.Primitive {
	return r.layout
}

func (r *Renderer) Draw(board BoardView) {
	r.boardTable.SetCell(0, 0, tview.NewTableCell(""))
	for col := 0; col < board.Cols(); col++ {
		r.boardTable.SetCell(0, col+1, labelCell(ColumnLabel(col)))
	}
	for row := 0; row < board.Rows(); row++ {
		r.boardTable.SetCell(row+1, 0, labelCell(strconv.Itoa(row+1)))
		for col := 0; col < board.Cols(); col++ {
			r.RenderCell(board, row, col)
		}
	}

	r.boardTable.SetFixed(1, 1)
	r.boardTable.SetTitle(fmt.Sprintf(" %s  mines: %d  flags: %d ",
		Title, board.MineCount(), board.FlagCount()))
}

func (r *Renderer) RenderCell(board BoardView, row, col int) {
	tile, ok := board.Tile(row, col)
	if !ok {
		return
	}

	color := tcell.ColorDarkGray
	switch {
	case tile.Exposed() && tile.HasMine():
		color = tcell.ColorRed
	case tile.Exposed():
		if c, ok := countTextColors[tile.NearbyMines()]; ok {
			color = c
		}
	case tile.Flagged():
		color = tcell.ColorYellow
	}

	r.boardTable.SetCell(row+1, col+1, tview.NewTableCell(Glyph(tile)).
		SetAlign(tview.AlignCenter).
		SetTextColor(color))
}

func (r *Renderer) Notify(message string) {
	r.status.SetText(message)
}

func labelCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).
		SetAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorYellow).
		SetSelectable(false)
}
