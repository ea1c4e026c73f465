package analysis

import "fmt"

// A State is an element of some analysis domain.
//
// A bottom state denotes the empty set of system states. It is never explored.
type State interface {
	IsBottom() bool
}

// A ConcrState is the concrete component of an ItpState.
//
// IsError reports whether the state denotes an error condition of the modeled system.
type ConcrState interface {
	State
	IsError() bool
}

// A TargetState is a state that can be flagged as a target when it is added to the ARG.
type TargetState interface {
	State
	IsTarget() bool
}

// Couples a concrete state with an abstraction of it.
//
// The abstract component over-approximates the behaviour reachable from the concrete component.
// Refinement replaces the abstract component with a stronger one; the concrete component never changes.
type ItpState[C ConcrState, A State] struct {
	concr C
	abstr A
}

func NewItpState[C ConcrState, A State](concr C, abstr A) ItpState[C, A] {
	return ItpState[C, A]{concr: concr, abstr: abstr}
}

func (s ItpState[C, A]) Concr() C {
	return s.concr
}

func (s ItpState[C, A]) Abstr() A {
	return s.abstr
}

// Returns a copy of the state with the abstract component replaced
func (s ItpState[C, A]) WithAbstr(abstr A) ItpState[C, A] {
	return ItpState[C, A]{concr: s.concr, abstr: abstr}
}

// The state is bottom if either of its components is bottom
func (s ItpState[C, A]) IsBottom() bool {
	return s.concr.IsBottom() || s.abstr.IsBottom()
}

func (s ItpState[C, A]) IsTarget() bool {
	return s.concr.IsError()
}

func (s ItpState[C, A]) String() string {
	return fmt.Sprintf("(%v | %v)", s.concr, s.abstr)
}
