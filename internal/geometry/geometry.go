// Package geometry models positions and runs of character cells on the
// fixed 20x4 display grid.
//
// A Segment is logically linear: it may span several rows, wrapping at the
// grid width. All arithmetic is exact integer arithmetic over the grid
// width; callers are trusted to stay within bounds.
package geometry

// Grid dimensions in character cells
const (
	Width  = 20
	Height = 4
)

// Pos is a zero-based cursor position on the grid. Row 0 is the top line.
type Pos struct {
	Row int
	Col int
}

// Offset advances the position by n cells, carrying into subsequent rows
// whenever the column reaches the grid width. Arbitrarily large offsets wrap
// repeatedly.
func (p Pos) Offset(n int) Pos {
	p.Col += n

	for p.Col >= Width {
		p.Row++
		p.Col -= Width
	}

	return p
}

// Segment is a run of Length character cells starting at Pos, continuing
// across row boundaries.
type Segment struct {
	Pos    Pos
	Length int
}

// Split partitions the segment into a head of offset cells and a tail of the
// remainder. The tail starts where the head ends, wrapping rows as needed.
// offset must not exceed the segment length; splitting at the full length
// yields a zero-length tail.
func (s Segment) Split(offset int) (Segment, Segment) {
	head := Segment{Pos: s.Pos, Length: offset}
	tail := Segment{Pos: s.Pos.Offset(offset), Length: s.Length - offset}
	return head, tail
}

// Segment implements Region.
func (s Segment) Segment() Segment { return s }

// Region is anything that resolves to a run of cells on the grid.
type Region interface {
	Segment() Segment
}

// Line is a full grid row.
type Line int

// Segment implements Region.
func (l Line) Segment() Segment {
	return Segment{Pos: Pos{Row: int(l)}, Length: Width}
}

// Split partitions the line at the given column.
func (l Line) Split(offset int) (Segment, Segment) {
	return l.Segment().Split(offset)
}

// Lines is an inclusive, contiguous range of full grid rows.
type Lines struct {
	First int
	Last  int
}

// Segment implements Region.
func (l Lines) Segment() Segment {
	return Segment{
		Pos:    Pos{Row: l.First},
		Length: (1 + l.Last - l.First) * Width,
	}
}

// EntireScreen is every cell on the grid.
func EntireScreen() Segment {
	return Segment{Pos: Pos{}, Length: Width * Height}
}
