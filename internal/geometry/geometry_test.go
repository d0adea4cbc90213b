package geometry

import "testing"

func TestPosOffset(t *testing.T) {
	tests := []struct {
		name   string
		start  Pos
		offset int
		want   Pos
	}{
		{
			name:   "no movement",
			start:  Pos{Row: 1, Col: 5},
			offset: 0,
			want:   Pos{Row: 1, Col: 5},
		},
		{
			name:   "within row",
			start:  Pos{Row: 0, Col: 3},
			offset: 10,
			want:   Pos{Row: 0, Col: 13},
		},
		{
			name:   "lands exactly on row end",
			start:  Pos{Row: 0, Col: 18},
			offset: 2,
			want:   Pos{Row: 1, Col: 0},
		},
		{
			name:   "wraps one row",
			start:  Pos{Row: 1, Col: 15},
			offset: 8,
			want:   Pos{Row: 2, Col: 3},
		},
		{
			name:   "wraps multiple rows",
			start:  Pos{Row: 0, Col: 0},
			offset: 3*Width + 7,
			want:   Pos{Row: 3, Col: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Offset(tt.offset)
			if got != tt.want {
				t.Errorf("Offset(%d) = %+v, want %+v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestPosOffsetRowAndColumnArithmetic(t *testing.T) {
	// Offsetting from column 0 wraps exactly offset/Width rows and lands at
	// column offset%Width.
	for offset := 0; offset < Width*Height; offset++ {
		got := Pos{}.Offset(offset)
		want := Pos{Row: offset / Width, Col: offset % Width}
		if got != want {
			t.Fatalf("Offset(%d) = %+v, want %+v", offset, got, want)
		}
	}
}

func TestSegmentSplit(t *testing.T) {
	tests := []struct {
		name     string
		segment  Segment
		offset   int
		wantHead Segment
		wantTail Segment
	}{
		{
			name:     "mid line",
			segment:  Segment{Pos: Pos{Row: 0, Col: 0}, Length: Width},
			offset:   13,
			wantHead: Segment{Pos: Pos{Row: 0, Col: 0}, Length: 13},
			wantTail: Segment{Pos: Pos{Row: 0, Col: 13}, Length: 7},
		},
		{
			name:     "split across row boundary",
			segment:  Segment{Pos: Pos{Row: 1, Col: 10}, Length: 2 * Width},
			offset:   15,
			wantHead: Segment{Pos: Pos{Row: 1, Col: 10}, Length: 15},
			wantTail: Segment{Pos: Pos{Row: 2, Col: 5}, Length: 25},
		},
		{
			name:     "zero offset",
			segment:  Segment{Pos: Pos{Row: 2, Col: 4}, Length: 6},
			offset:   0,
			wantHead: Segment{Pos: Pos{Row: 2, Col: 4}, Length: 0},
			wantTail: Segment{Pos: Pos{Row: 2, Col: 4}, Length: 6},
		},
		{
			name:     "full length yields empty tail",
			segment:  Segment{Pos: Pos{Row: 2, Col: 4}, Length: 6},
			offset:   6,
			wantHead: Segment{Pos: Pos{Row: 2, Col: 4}, Length: 6},
			wantTail: Segment{Pos: Pos{Row: 2, Col: 10}, Length: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, tail := tt.segment.Split(tt.offset)
			if head != tt.wantHead {
				t.Errorf("head = %+v, want %+v", head, tt.wantHead)
			}
			if tail != tt.wantTail {
				t.Errorf("tail = %+v, want %+v", tail, tt.wantTail)
			}
			if head.Length+tail.Length != tt.segment.Length {
				t.Errorf("lengths %d + %d do not sum to %d",
					head.Length, tail.Length, tt.segment.Length)
			}
		})
	}
}

// cells enumerates the positions a segment covers, in order.
func cells(s Segment) []Pos {
	out := make([]Pos, 0, s.Length)
	for i := 0; i < s.Length; i++ {
		out = append(out, s.Pos.Offset(i))
	}
	return out
}

func TestSplitPreservesCellSequence(t *testing.T) {
	segment := Segment{Pos: Pos{Row: 0, Col: 17}, Length: 30}

	for offset := 0; offset <= segment.Length; offset++ {
		head, tail := segment.Split(offset)

		combined := append(cells(head), cells(tail)...)
		original := cells(segment)

		if len(combined) != len(original) {
			t.Fatalf("offset %d: %d cells, want %d", offset, len(combined), len(original))
		}
		for i := range original {
			if combined[i] != original[i] {
				t.Fatalf("offset %d: cell %d = %+v, want %+v",
					offset, i, combined[i], original[i])
			}
		}
	}
}

func TestRegions(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   Segment
	}{
		{
			name:   "line",
			region: Line(2),
			want:   Segment{Pos: Pos{Row: 2}, Length: Width},
		},
		{
			name:   "line range",
			region: Lines{First: 1, Last: 3},
			want:   Segment{Pos: Pos{Row: 1}, Length: 3 * Width},
		},
		{
			name:   "single line as range",
			region: Lines{First: 2, Last: 2},
			want:   Segment{Pos: Pos{Row: 2}, Length: Width},
		},
		{
			name:   "entire screen",
			region: EntireScreen(),
			want:   Segment{Pos: Pos{}, Length: Width * Height},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.Segment(); got != tt.want {
				t.Errorf("Segment() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
