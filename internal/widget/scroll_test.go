package widget

import (
	"testing"

	"github.com/lcdradio/lcdradio/internal/geometry"
)

func scrollSegment(length int) geometry.Segment {
	return geometry.Segment{Pos: geometry.Pos{Row: 1}, Length: length}
}

func TestScrollingLabelFittingTextNeverScrolls(t *testing.T) {
	out := &paintRecorder{}
	label := NewScrollingLabel[string](scrollSegment(10), nil)

	label.Paint("short", out)
	if got := out.lastText(t); got != "short" {
		t.Fatalf("painted %q, want %q", got, "short")
	}

	for i := 0; i < 10; i++ {
		label.HandleEvent(tick(), "short")
		label.Paint("short", out)
	}

	if got := len(out.writes); got != 1 {
		t.Errorf("fitting text repainted %d times, want 1", got)
	}
}

func TestScrollingLabelAdvancesToWordBoundary(t *testing.T) {
	const text = "hello world of radio"

	out := &paintRecorder{}
	label := NewScrollingLabel[string](scrollSegment(10), nil)

	// A data change resets the marquee: offset 0, full wait.
	label.Update("", text)
	label.Paint(text, out)
	if got := out.lastText(t); got != text {
		t.Fatalf("painted %q, want %q", got, text)
	}

	// Two wait ticks pass with no visible movement
	for i := 0; i < scrollWaitTicks; i++ {
		label.HandleEvent(tick(), text)
		label.Paint(text, out)
	}
	if got := len(out.writes); got != 1 {
		t.Fatalf("moved during wait ticks: %d writes", got)
	}

	// The next tick advances to the start of the next word
	label.HandleEvent(tick(), text)
	label.Paint(text, out)
	if got := out.lastText(t); got != "world of radio" {
		t.Errorf("painted %q, want %q", got, "world of radio")
	}

	label.HandleEvent(tick(), text)
	label.Paint(text, out)
	if got := out.lastText(t); got != "of radio" {
		t.Errorf("painted %q, want %q", got, "of radio")
	}
}

func TestScrollingLabelCutsIntoLongWords(t *testing.T) {
	// No whitespace within reach: the window advances by the maximum
	// scroll distance instead of a word boundary.
	const text = "abcdefghijklmnopqrst"

	out := &paintRecorder{}
	label := NewScrollingLabel[string](scrollSegment(10), nil)
	label.Update("", text)
	label.Paint(text, out)

	for i := 0; i < scrollWaitTicks; i++ {
		label.HandleEvent(tick(), text)
	}
	label.HandleEvent(tick(), text)
	label.Paint(text, out)

	if got := out.lastText(t); got != text[maxScrollDistance:] {
		t.Errorf("painted %q, want %q", got, text[maxScrollDistance:])
	}
}

func TestScrollingLabelResetsNearEnd(t *testing.T) {
	const text = "hello world"

	out := &paintRecorder{}
	label := NewScrollingLabel[string](scrollSegment(8), nil)
	label.Update("", text)
	label.Paint(text, out)

	for i := 0; i < scrollWaitTicks; i++ {
		label.HandleEvent(tick(), text)
	}

	label.HandleEvent(tick(), text)
	label.Paint(text, out)
	if got := out.lastText(t); got != "world" {
		t.Fatalf("painted %q, want %q", got, "world")
	}

	// The remainder is within the reset threshold, so the next scroll tick
	// restarts from the beginning.
	label.HandleEvent(tick(), text)
	label.Paint(text, out)
	if got := out.lastText(t); got != text {
		t.Errorf("painted %q, want %q", got, text)
	}
}

func TestScrollingLabelResetsOnDataChange(t *testing.T) {
	out := &paintRecorder{}
	label := NewScrollingLabel[string](scrollSegment(8), nil)

	label.Update("", "hello world")
	label.Paint("hello world", out)

	for i := 0; i < scrollWaitTicks+1; i++ {
		label.HandleEvent(tick(), "hello world")
	}
	label.Paint("hello world", out)
	if got := out.lastText(t); got != "world" {
		t.Fatalf("painted %q, want %q", got, "world")
	}

	// New data drops the cache and restarts from offset zero
	label.Update("hello world", "another tune")
	label.Paint("another tune", out)
	if got := out.lastText(t); got != "another tune" {
		t.Errorf("painted %q, want %q", got, "another tune")
	}
}

func TestNextScrollStep(t *testing.T) {
	tests := []struct {
		name     string
		visible  string
		wantStep int
		wantOK   bool
	}{
		{name: "word boundary within reach", visible: "ab cdef", wantStep: 3, wantOK: true},
		{name: "boundary at max distance", visible: "hello world", wantStep: 6, wantOK: true},
		{name: "long word cut at max distance", visible: "abcdefghij", wantStep: 6, wantOK: true},
		{name: "run of spaces skipped", visible: "ab   cd", wantStep: 5, wantOK: true},
		{name: "no further word", visible: "abc   ", wantStep: 0, wantOK: false},
		{name: "single word shorter than max", visible: "abc", wantStep: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, ok := nextScrollStep([]rune(tt.visible))
			if step != tt.wantStep || ok != tt.wantOK {
				t.Errorf("nextScrollStep(%q) = (%d, %v), want (%d, %v)",
					tt.visible, step, ok, tt.wantStep, tt.wantOK)
			}
		})
	}
}
