package widget

import (
	"fmt"
	"unicode"

	"github.com/lcdradio/lcdradio/internal/display"
	"github.com/lcdradio/lcdradio/internal/geometry"
)

// Marquee timing and distance constants, in characters and ticks.
const (
	// scrollWaitTicks is the number of ticks before scrolling starts or
	// resumes after a reset.
	scrollWaitTicks = 2

	// maxScrollDistance is the furthest a single scroll step advances
	// before preferring a word boundary.
	maxScrollDistance = 6

	// scrollResetThreshold is the remaining visible length at which
	// scrolling restarts from the beginning instead of continuing.
	scrollResetThreshold = 6
)

// ScrollingLabel is a marquee: when its text exceeds the segment, the
// visible window advances word by word on each tick, pausing briefly at the
// start and resetting once the tail comes into view. Text that fits is
// never scrolled.
type ScrollingLabel[Data comparable] struct {
	segment       geometry.Segment
	format        func(Data) string
	text          []rune // cached rendered text, nil until first needed
	startOffset   int
	waitRemaining int
	dirty         bool
}

// NewScrollingLabel creates a marquee label in region. The rendered form
// comes from format, or fmt.Sprint when format is nil.
func NewScrollingLabel[Data comparable](region geometry.Region, format func(Data) string) *ScrollingLabel[Data] {
	return &ScrollingLabel[Data]{
		segment: region.Segment(),
		format:  format,
		dirty:   true,
	}
}

func (l *ScrollingLabel[Data]) HandleEvent(event Event, data Data) {
	if _, ok := event.(Tick); ok {
		l.advance(data)
	}
}

func (l *ScrollingLabel[Data]) Update(oldData, newData Data) {
	if oldData != newData {
		l.ForceRepaint(newData)
	}
}

func (l *ScrollingLabel[Data]) ForceRepaint(Data) {
	l.text = nil
	l.reset()
}

func (l *ScrollingLabel[Data]) Paint(data Data, out display.TextOutput) {
	if !l.dirty {
		return
	}
	l.dirty = false

	out.WriteTo(l.segment, string(l.renderedText(data)[l.startOffset:]))
}

func (l *ScrollingLabel[Data]) renderedText(data Data) []rune {
	if l.text == nil {
		if l.format != nil {
			l.text = []rune(l.format(data))
		} else {
			l.text = []rune(fmt.Sprint(data))
		}
	}
	return l.text
}

func (l *ScrollingLabel[Data]) reset() {
	l.dirty = true
	l.startOffset = 0
	l.waitRemaining = scrollWaitTicks
}

// advance moves the visible window one scroll step.
func (l *ScrollingLabel[Data]) advance(data Data) {
	text := l.renderedText(data)

	if len(text) <= l.segment.Length {
		return
	}

	if l.waitRemaining > 0 {
		l.waitRemaining--
		return
	}

	l.dirty = true

	visible := text[l.startOffset:]

	if len(visible) <= scrollResetThreshold {
		l.reset()
		return
	}

	if step, ok := nextScrollStep(visible); ok {
		l.startOffset += step
	} else {
		l.reset()
	}
}

// nextScrollStep finds how far the window advances: past up to
// maxScrollDistance-1 leading non-whitespace characters, then past one more
// character, to the next non-whitespace character. Reports false when no
// such character exists.
func nextScrollStep(visible []rune) (int, bool) {
	i := 0
	for i < len(visible) && i < maxScrollDistance-1 && !unicode.IsSpace(visible[i]) {
		i++
	}

	for i++; i < len(visible); i++ {
		if !unicode.IsSpace(visible[i]) {
			return i, true
		}
	}

	return 0, false
}
