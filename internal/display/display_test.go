package display

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lcdradio/lcdradio/internal/geometry"
)

// recorder captures every primitive call so tests can assert on the exact
// sequence of device operations.
type recorder struct {
	ops []string
}

func (r *recorder) Clear() {
	r.ops = append(r.ops, "clear")
}

func (r *recorder) MoveCursor(pos geometry.Pos) {
	r.ops = append(r.ops, fmt.Sprintf("move %d,%d", pos.Row, pos.Col))
}

func (r *recorder) WriteChar(c rune) {
	r.ops = append(r.ops, fmt.Sprintf("write %c", c))
}

func writes(text string) []string {
	out := make([]string, 0, len(text))
	for _, c := range text {
		out = append(out, fmt.Sprintf("write %c", c))
	}
	return out
}

func assertOps(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d ops, want %d:\ngot  %s\nwant %s",
			len(got), len(want), strings.Join(got, "; "), strings.Join(want, "; "))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("op %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClear(t *testing.T) {
	device := &recorder{}
	NewTextWriter(device).Clear()
	assertOps(t, device.ops, []string{"clear"})
}

func TestWriteShortString(t *testing.T) {
	device := &recorder{}
	writer := NewTextWriter(device)

	segment := geometry.Segment{Pos: geometry.Pos{Row: 1, Col: 2}, Length: 3}
	writer.WriteTo(segment, "abc")

	assertOps(t, device.ops, append([]string{"move 1,2"}, writes("abc")...))
}

func TestWritePadsWithSpaces(t *testing.T) {
	device := &recorder{}
	writer := NewTextWriter(device)

	segment := geometry.Segment{Pos: geometry.Pos{Row: 0, Col: 0}, Length: 5}
	writer.WriteTo(segment, "abc")

	assertOps(t, device.ops, append([]string{"move 0,0"}, writes("abc  ")...))
}

func TestWriteTruncatesAtSegmentBudget(t *testing.T) {
	device := &recorder{}
	writer := NewTextWriter(device)

	segment := geometry.Segment{Pos: geometry.Pos{Row: 2, Col: 0}, Length: 4}
	writer.WriteTo(segment, "abcdefgh")

	// No writes occur beyond the segment's cell budget
	assertOps(t, device.ops, append([]string{"move 2,0"}, writes("abcd")...))
}

func TestWriteWrapsWithExplicitCursorMove(t *testing.T) {
	device := &recorder{}
	writer := NewTextWriter(device)

	segment := geometry.Segment{Pos: geometry.Pos{Row: 1, Col: 18}, Length: 4}
	writer.WriteTo(segment, "abcd")

	want := []string{"move 1,18"}
	want = append(want, writes("ab")...)
	want = append(want, "move 2,0")
	want = append(want, writes("cd")...)

	assertOps(t, device.ops, want)
}

func TestWriteEndingAtRowEndDoesNotMove(t *testing.T) {
	device := &recorder{}
	writer := NewTextWriter(device)

	segment := geometry.Segment{Pos: geometry.Pos{Row: 1, Col: 18}, Length: 2}
	writer.WriteTo(segment, "ab")

	// The segment is exhausted exactly at the row end, so no wrap move is
	// issued.
	assertOps(t, device.ops, append([]string{"move 1,18"}, writes("ab")...))
}

func TestMultipleWritesWithoutWrapping(t *testing.T) {
	device := &recorder{}
	writer := NewTextWriter(device)

	toWrite := []struct {
		pos  geometry.Pos
		text string
	}{
		{geometry.Pos{Row: 0, Col: 15}, "abcd"},
		{geometry.Pos{Row: 1, Col: 14}, "efghi"},
		{geometry.Pos{Row: 2, Col: 13}, "jklmno"},
	}

	var want []string
	for _, w := range toWrite {
		writer.WriteTo(geometry.Segment{Pos: w.pos, Length: len(w.text)}, w.text)
		want = append(want, fmt.Sprintf("move %d,%d", w.pos.Row, w.pos.Col))
		want = append(want, writes(w.text)...)
	}

	assertOps(t, device.ops, want)
}

func TestGridRendering(t *testing.T) {
	grid := NewGrid()
	writer := NewTextWriter(grid)

	writer.WriteTo(geometry.Line(0), "hello")
	writer.WriteTo(geometry.Segment{Pos: geometry.Pos{Row: 1, Col: 18}, Length: 4}, "abcd")

	if got, want := grid.Row(0), "hello               "; got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
	if got, want := grid.Row(1), "                  ab"; got != want {
		t.Errorf("row 1 = %q, want %q", got, want)
	}
	if got, want := grid.Row(2), "cd                  "; got != want {
		t.Errorf("row 2 = %q, want %q", got, want)
	}

	grid.Clear()
	for row := 0; row < geometry.Height; row++ {
		if got := grid.Row(row); strings.TrimSpace(got) != "" {
			t.Errorf("row %d not cleared: %q", row, got)
		}
	}
}

func TestGridIgnoresOutOfBoundsWrites(t *testing.T) {
	grid := NewGrid()

	// A raw device does not wrap; writes past the edge are the device's own
	// concern and must not corrupt other rows.
	grid.MoveCursor(geometry.Pos{Row: 0, Col: 19})
	grid.WriteChar('x')
	grid.WriteChar('y')

	if got, want := grid.Row(0), "                   x"; got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
	if got := strings.TrimSpace(grid.Row(1)); got != "" {
		t.Errorf("row 1 = %q, want blank", got)
	}
}
