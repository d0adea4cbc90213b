// Package display adapts a primitive character device into a text surface
// that widgets can paint formatted strings onto.
//
// The primitive device only knows how to clear, move its cursor, and write
// one character at a time. TextWriter layers segment-aware writing on top:
// strings are truncated to the segment's cell budget, padded with spaces to
// fully overwrite previous content, and wrapped across row boundaries with
// explicit cursor moves so that device-side auto-wrap behaviour is never
// relied upon.
package display

import "github.com/lcdradio/lcdradio/internal/geometry"

// CharacterDisplay is the primitive display capability, implemented by
// hardware or terminal collaborators.
type CharacterDisplay interface {
	// Clear clears the entire screen
	Clear()
	// MoveCursor moves the cursor to the given position
	MoveCursor(pos geometry.Pos)
	// WriteChar writes one character at the cursor and advances it one cell
	WriteChar(c rune)
}

// TextOutput is the surface widgets paint onto.
type TextOutput interface {
	Clear()
	WriteTo(region geometry.Region, text string)
}

// TextWriter implements TextOutput on top of a CharacterDisplay.
type TextWriter struct {
	device CharacterDisplay
}

// NewTextWriter wraps a primitive character device.
func NewTextWriter(device CharacterDisplay) *TextWriter {
	return &TextWriter{device: device}
}

// Clear resets the whole grid.
func (w *TextWriter) Clear() {
	w.device.Clear()
}

// WriteTo renders text into the region. The cursor is moved to the region's
// start, then characters are emitted one at a time, moving to the next row
// whenever the column reaches the grid width. Characters beyond the region's
// cell budget are dropped; once the text is exhausted the remaining budget is
// padded with spaces so the entire region is overwritten.
func (w *TextWriter) WriteTo(region geometry.Region, text string) {
	segment := region.Segment()

	w.device.MoveCursor(segment.Pos)

	pos := segment.Pos
	remaining := segment.Length

	emit := func(c rune) {
		if pos.Col >= geometry.Width {
			pos.Row++
			pos.Col = 0
			w.device.MoveCursor(pos)
		}

		w.device.WriteChar(c)
		pos.Col++
		remaining--
	}

	for _, c := range text {
		if remaining == 0 {
			return
		}
		emit(c)
	}

	for remaining > 0 {
		emit(' ')
	}
}
