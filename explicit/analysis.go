package explicit

import (
	"log"

	"lazymc/analysis"
)

// The lattice of value sets ordered by inclusion
type Lattice struct {
	universe Set
}

func (sys *System) Lattice() Lattice {
	return Lattice{universe: sys.Universe()}
}

func (l Lattice) Top() Set            { return l.universe }
func (l Lattice) Meet(a, b Set) Set   { return a.Intersect(b) }
func (l Lattice) IsLeq(a, b Set) bool { return a.IsSubset(b) }

// Computes the weakest interpolants of the value set domain
type Interpolator struct {
	universe Set
}

func (sys *System) Interpolator() Interpolator {
	return Interpolator{universe: sys.Universe()}
}

func (i Interpolator) ToItpDom(a Set) Obligation {
	return Obligation(a)
}

func (i Interpolator) Complement(a Set) Obligation {
	return Obligation(i.universe.Minus(a))
}

func (i Interpolator) Refutes(a Set, b Obligation) bool {
	return a.Intersect(Set(b)).IsEmpty()
}

// Returns every value outside of the obligation
func (i Interpolator) Interpolate(a Set, b Obligation) Set {
	if !i.Refutes(a, b) {
		log.Panicf("explicit: can not interpolate %v and %v since they intersect", a, b)
	}
	return i.universe.Minus(Set(b))
}

type Concretizer struct{}

func (Concretizer) Concretize(c State) Set {
	return c.Vals
}

// The transition function of the abstract domain.
//
// Always returns exactly one successor, which is bottom if the edge is disabled for every value.
type AbstrTransFunc struct{}

func (AbstrTransFunc) SuccStates(a Set, e *Edge, p Precision) []Set {
	return []Set{p.Close(e.Post(a))}
}

// Computes the pre-image of obligations
type InvTransFunc struct{}

func (InvTransFunc) PreStates(b Obligation, e *Edge, _ analysis.UnitPrec) []Obligation {
	return []Obligation{Obligation(e.Pre(Set(b)))}
}

// The transition function of the analysis.
//
// The concrete component is updated exactly, the abstract component under the precision.
type TransFunc struct {
	sys *System
}

func (sys *System) TransFunc() TransFunc {
	return TransFunc{sys: sys}
}

func (t TransFunc) SuccStates(s ItpState, e *Edge, p Precision) []ItpState {
	concr := t.sys.state(e.To, e.Post(s.Concr().Vals))
	abstr := p.Close(e.Post(s.Abstr()))
	return []ItpState{analysis.NewItpState(concr, abstr)}
}

// The initial state has the top abstraction
type InitFunc struct {
	sys *System
}

func (sys *System) InitFunc() InitFunc {
	return InitFunc{sys: sys}
}

func (i InitFunc) InitStates(_ Precision) []ItpState {
	return []ItpState{analysis.NewItpState(i.sys.Init(), i.sys.Universe())}
}

// Enumerates the edges leaving the location of the concrete component
type Lts struct {
	sys *System
}

func (sys *System) Lts() Lts {
	return Lts{sys: sys}
}

func (l Lts) EnabledActions(s ItpState) []*Edge {
	return l.sys.Outgoing(s.Concr().Loc)
}

// Nodes may only cover each other if they are at the same location
func Projection(s ItpState) string {
	return s.Concr().Loc
}
