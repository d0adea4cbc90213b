package display

import "github.com/lcdradio/lcdradio/internal/geometry"

// Grid is an in-memory CharacterDisplay backed by a rune buffer. The
// terminal driver renders from it, and tests assert on it.
//
// Like a raw character device, Grid does not wrap: writes past the right
// edge or below the bottom row are dropped, and the cursor simply advances.
type Grid struct {
	cells  [geometry.Height][geometry.Width]rune
	cursor geometry.Pos
}

// NewGrid returns a cleared grid with the cursor at the top-left.
func NewGrid() *Grid {
	g := &Grid{}
	g.Clear()
	return g
}

// Clear implements CharacterDisplay.
func (g *Grid) Clear() {
	for row := range g.cells {
		for col := range g.cells[row] {
			g.cells[row][col] = ' '
		}
	}
	g.cursor = geometry.Pos{}
}

// MoveCursor implements CharacterDisplay.
func (g *Grid) MoveCursor(pos geometry.Pos) {
	g.cursor = pos
}

// WriteChar implements CharacterDisplay.
func (g *Grid) WriteChar(c rune) {
	if g.cursor.Row >= 0 && g.cursor.Row < geometry.Height &&
		g.cursor.Col >= 0 && g.cursor.Col < geometry.Width {
		g.cells[g.cursor.Row][g.cursor.Col] = c
	}
	g.cursor.Col++
}

// Row returns the contents of one grid row.
func (g *Grid) Row(row int) string {
	return string(g.cells[row][:])
}

// Rows returns every grid row, top to bottom.
func (g *Grid) Rows() []string {
	rows := make([]string, geometry.Height)
	for row := range rows {
		rows[row] = g.Row(row)
	}
	return rows
}

// String renders the grid with newlines between rows.
func (g *Grid) String() string {
	out := make([]byte, 0, geometry.Height*(geometry.Width+1))
	for row, line := range g.Rows() {
		if row > 0 {
			out = append(out, '\n')
		}
		out = append(out, line...)
	}
	return string(out)
}
