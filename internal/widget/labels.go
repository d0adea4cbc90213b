package widget

import (
	"fmt"
	"strings"

	"github.com/lcdradio/lcdradio/internal/display"
	"github.com/lcdradio/lcdradio/internal/geometry"
)

// FixedLabel renders a constant string into its segment once, and again
// after every forced repaint. It ignores its data entirely.
type FixedLabel[Data any] struct {
	text    string
	segment geometry.Segment
	dirty   bool
}

// NewFixedLabel creates a label that always displays text in region.
func NewFixedLabel[Data any](text string, region geometry.Region) *FixedLabel[Data] {
	return &FixedLabel[Data]{
		text:    text,
		segment: region.Segment(),
		dirty:   true,
	}
}

func (l *FixedLabel[Data]) HandleEvent(Event, Data) {}

func (l *FixedLabel[Data]) Update(Data, Data) {}

func (l *FixedLabel[Data]) ForceRepaint(Data) {
	l.dirty = true
}

func (l *FixedLabel[Data]) Paint(_ Data, out display.TextOutput) {
	if !l.dirty {
		return
	}
	l.dirty = false

	out.WriteTo(l.segment, l.text)
}

// GeneratedLabel re-evaluates a generator on every paint and writes the
// result only when it differs from the previously rendered value. It is
// used for values that change independently of player state, such as the
// wall clock.
type GeneratedLabel[Data any] struct {
	segment  geometry.Segment
	generate func() string
	previous *string
}

// NewGeneratedLabel creates a label displaying generate() in region.
func NewGeneratedLabel[Data any](region geometry.Region, generate func() string) *GeneratedLabel[Data] {
	return &GeneratedLabel[Data]{
		segment:  region.Segment(),
		generate: generate,
	}
}

func (l *GeneratedLabel[Data]) HandleEvent(Event, Data) {}

func (l *GeneratedLabel[Data]) Update(Data, Data) {}

func (l *GeneratedLabel[Data]) ForceRepaint(Data) {
	l.previous = nil
}

func (l *GeneratedLabel[Data]) Paint(_ Data, out display.TextOutput) {
	value := l.generate()

	if l.previous != nil && *l.previous == value {
		return
	}
	l.previous = &value

	out.WriteTo(l.segment, value)
}

// Label renders its data's display form, repainting only when the data
// changes. Data must be comparable; the rendered form comes from format,
// or fmt.Sprint when format is nil.
type Label[Data comparable] struct {
	segment    geometry.Segment
	format     func(Data) string
	alignRight bool
	dirty      bool
}

// NewLabel creates a change-tracked label in region.
func NewLabel[Data comparable](region geometry.Region, format func(Data) string) *Label[Data] {
	return &Label[Data]{
		segment: region.Segment(),
		format:  format,
		dirty:   true,
	}
}

// AlignRight right-aligns the rendered text, truncating it to exactly the
// segment length.
func (l *Label[Data]) AlignRight() *Label[Data] {
	l.alignRight = true
	return l
}

func (l *Label[Data]) HandleEvent(Event, Data) {}

func (l *Label[Data]) Update(oldData, newData Data) {
	if oldData != newData {
		l.dirty = true
	}
}

func (l *Label[Data]) ForceRepaint(Data) {
	l.dirty = true
}

func (l *Label[Data]) Paint(data Data, out display.TextOutput) {
	if !l.dirty {
		return
	}
	l.dirty = false

	text := l.render(data)
	if l.alignRight {
		text = padLeft(text, l.segment.Length)
	}

	out.WriteTo(l.segment, text)
}

func (l *Label[Data]) render(data Data) string {
	if l.format != nil {
		return l.format(data)
	}
	return fmt.Sprint(data)
}

// padLeft truncates text to width characters and left-pads it with spaces.
func padLeft(text string, width int) string {
	runes := []rune(text)
	if len(runes) > width {
		runes = runes[:width]
	}
	return strings.Repeat(" ", width-len(runes)) + string(runes)
}
