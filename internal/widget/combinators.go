package widget

import "github.com/lcdradio/lcdradio/internal/display"

// Group composes two widgets sharing the same data type. Every lifecycle
// call is forwarded to both, first then second, so multiple independent
// regions can be painted from one logical value.
type Group[Data any] struct {
	first  Widget[Data]
	second Widget[Data]
}

// NewGroup composes first and second.
func NewGroup[Data any](first, second Widget[Data]) *Group[Data] {
	return &Group[Data]{first: first, second: second}
}

func (g *Group[Data]) HandleEvent(event Event, data Data) {
	g.first.HandleEvent(event, data)
	g.second.HandleEvent(event, data)
}

func (g *Group[Data]) Update(oldData, newData Data) {
	g.first.Update(oldData, newData)
	g.second.Update(oldData, newData)
}

func (g *Group[Data]) ForceRepaint(data Data) {
	g.first.ForceRepaint(data)
	g.second.ForceRepaint(data)
}

func (g *Group[Data]) Paint(data Data, out display.TextOutput) {
	g.first.Paint(data, out)
	g.second.Paint(data, out)
}

// GroupOf composes any number of widgets in order.
func GroupOf[Data any](widgets ...Widget[Data]) Widget[Data] {
	group := widgets[0]
	for _, w := range widgets[1:] {
		group = NewGroup(group, w)
	}
	return group
}

// Lens wraps a widget whose data type differs from the outer data type via
// a pure projection. Every lifecycle call projects before delegating; where
// both old and new data are needed, each is projected independently.
type Lens[Outer, Inner any] struct {
	project func(Outer) Inner
	inner   Widget[Inner]
}

// NewLens wraps inner behind the projection.
func NewLens[Outer, Inner any](project func(Outer) Inner, inner Widget[Inner]) *Lens[Outer, Inner] {
	return &Lens[Outer, Inner]{project: project, inner: inner}
}

func (l *Lens[Outer, Inner]) HandleEvent(event Event, data Outer) {
	l.inner.HandleEvent(event, l.project(data))
}

func (l *Lens[Outer, Inner]) Update(oldData, newData Outer) {
	l.inner.Update(l.project(oldData), l.project(newData))
}

func (l *Lens[Outer, Inner]) ForceRepaint(data Outer) {
	l.inner.ForceRepaint(l.project(data))
}

func (l *Lens[Outer, Inner]) Paint(data Outer, out display.TextOutput) {
	l.inner.Paint(l.project(data), out)
}

// Scope attaches private evolving state to an inner widget. The state is
// owned by this node alone: it is advanced by the event and update
// reducers, combined with the outer data through the projector to produce
// the inner widget's data, and reset to its initial value on forced
// repaint. This is how ephemeral display preferences ("show the volume for
// two ticks after it changes") exist without polluting the shared player
// state.
type Scope[State, Outer, Inner any] struct {
	initial  State
	state    State
	onEvent  func(State, Event, Outer) State
	onUpdate func(State, Outer, Outer) State
	project  func(State, Outer) Inner
	inner    Widget[Inner]
}

// NewScope wraps inner with private state. Either reducer may be nil, in
// which case the state is left untouched for that lifecycle call.
func NewScope[State, Outer, Inner any](
	initial State,
	onEvent func(State, Event, Outer) State,
	onUpdate func(State, Outer, Outer) State,
	project func(State, Outer) Inner,
	inner Widget[Inner],
) *Scope[State, Outer, Inner] {
	return &Scope[State, Outer, Inner]{
		initial:  initial,
		state:    initial,
		onEvent:  onEvent,
		onUpdate: onUpdate,
		project:  project,
		inner:    inner,
	}
}

func (s *Scope[State, Outer, Inner]) HandleEvent(event Event, data Outer) {
	oldInner := s.project(s.state, data)
	if s.onEvent != nil {
		s.state = s.onEvent(s.state, event, data)
	}
	newInner := s.project(s.state, data)

	s.inner.Update(oldInner, newInner)
	s.inner.HandleEvent(event, newInner)
}

func (s *Scope[State, Outer, Inner]) Update(oldData, newData Outer) {
	oldInner := s.project(s.state, oldData)
	if s.onUpdate != nil {
		s.state = s.onUpdate(s.state, oldData, newData)
	}
	newInner := s.project(s.state, newData)

	s.inner.Update(oldInner, newInner)
}

func (s *Scope[State, Outer, Inner]) ForceRepaint(data Outer) {
	s.state = s.initial
	s.inner.ForceRepaint(s.project(s.state, data))
}

func (s *Scope[State, Outer, Inner]) Paint(data Outer, out display.TextOutput) {
	s.inner.Paint(s.project(s.state, data), out)
}

// Either holds one of two variants. The zero value is variant A with A's
// zero value.
type Either[A, B any] struct {
	isB bool
	a   A
	b   B
}

// ToA wraps an A value.
func ToA[A, B any](a A) Either[A, B] {
	return Either[A, B]{a: a}
}

// ToB wraps a B value.
func ToB[A, B any](b B) Either[A, B] {
	return Either[A, B]{isB: true, b: b}
}

// IsB reports whether the B variant is held.
func (e Either[A, B]) IsB() bool { return e.isB }

// EitherWidget switches between two widgets over disjoint data variants.
// The discriminator derives the variant from the data on every call; it is
// never stored. When an update changes the variant, the newly active widget
// is force-repainted with its fresh data rather than incrementally updated,
// since its last paint may predate the variant switch.
type EitherWidget[Data, A, B any] struct {
	split func(Data) Either[A, B]
	a     Widget[A]
	b     Widget[B]
}

// NewEither composes widgets a and b behind the discriminator split.
func NewEither[Data, A, B any](split func(Data) Either[A, B], a Widget[A], b Widget[B]) *EitherWidget[Data, A, B] {
	return &EitherWidget[Data, A, B]{split: split, a: a, b: b}
}

func (e *EitherWidget[Data, A, B]) HandleEvent(event Event, data Data) {
	if v := e.split(data); v.isB {
		e.b.HandleEvent(event, v.b)
	} else {
		e.a.HandleEvent(event, v.a)
	}
}

func (e *EitherWidget[Data, A, B]) Update(oldData, newData Data) {
	oldV, newV := e.split(oldData), e.split(newData)

	switch {
	case !oldV.isB && !newV.isB:
		e.a.Update(oldV.a, newV.a)
	case oldV.isB && newV.isB:
		e.b.Update(oldV.b, newV.b)
	case newV.isB:
		e.b.ForceRepaint(newV.b)
	default:
		e.a.ForceRepaint(newV.a)
	}
}

func (e *EitherWidget[Data, A, B]) ForceRepaint(data Data) {
	if v := e.split(data); v.isB {
		e.b.ForceRepaint(v.b)
	} else {
		e.a.ForceRepaint(v.a)
	}
}

func (e *EitherWidget[Data, A, B]) Paint(data Data, out display.TextOutput) {
	if v := e.split(data); v.isB {
		e.b.Paint(v.b, out)
	} else {
		e.a.Paint(v.a, out)
	}
}
