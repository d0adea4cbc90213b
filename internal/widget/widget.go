// Package widget implements the incremental display tree.
//
// A Widget is generic over the data it renders. The tree is driven by the
// event loop: data transitions arrive via Update, timer ticks via
// HandleEvent, and after every driven event exactly one Paint pass runs.
// Widgets track their own dirtiness so that Paint touches the device only
// for content that actually changed.
//
// Leaf widgets (FixedLabel, GeneratedLabel, Label, ScrollingLabel) emit
// text into a fixed grid segment. Composite widgets (Group, Lens, Scope,
// EitherWidget) shape what data the leaves see without painting anything
// themselves.
package widget

import (
	"time"

	"github.com/lcdradio/lcdradio/internal/display"
)

// Event is a non-data input delivered to the widget tree.
type Event interface {
	isEvent()
}

// Tick is the once-per-second timer event driving animations.
type Tick struct {
	Time time.Time
}

func (Tick) isEvent() {}

// Widget is the lifecycle contract shared by every node in the display tree.
type Widget[Data any] interface {
	// HandleEvent reacts to a timer tick or other non-data event.
	HandleEvent(event Event, data Data)

	// Update reacts to a data transition, typically marking the widget
	// dirty iff oldData != newData.
	Update(oldData, newData Data)

	// ForceRepaint unconditionally marks the widget dirty and drops any
	// cached derived text. Used when a structural context change (such as
	// a station switch) invalidates incremental assumptions.
	ForceRepaint(data Data)

	// Paint emits output if dirty, then clears the dirty flag. A clean
	// widget must not touch the display.
	Paint(data Data, out display.TextOutput)
}
