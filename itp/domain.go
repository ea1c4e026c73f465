package itp

import (
	"log"

	"lazymc/analysis"
	"lazymc/arg"
	"lazymc/lattice"
)

// The collaborators shared by the refinement strategies and the algorithm strategy.
//
// C is the concrete domain, A the abstract domain, B the interpolation domain of the
// refutation obligations, Act the actions and P the precision of the inverse transition function.
type Domain[C analysis.ConcrState, A analysis.State, B any, Act any, P any] struct {
	Lattice      lattice.Lattice[A]
	Interpolator lattice.Interpolator[A, B]
	Concretizer  lattice.Concretizer[C, A]
	InvTransFunc analysis.InvTransFunc[B, Act, P]
	Prec         P
}

func (d Domain[C, A, B, Act, P]) validate() {
	if d.Lattice == nil || d.Interpolator == nil || d.Concretizer == nil || d.InvTransFunc == nil {
		log.Panicf("itp: incomplete domain. Lattice, Interpolator, Concretizer and InvTransFunc must be provided")
	}
}

// Narrows the abstract component of the node with the interpolant.
// Returns the new abstract component.
func (d Domain[C, A, B, Act, P]) strengthen(g *arg.ARG[analysis.ItpState[C, A], Act], node arg.NodeID, interpolant A) A {
	n := g.Node(node)
	state := n.State()
	strengthened := d.Lattice.Meet(state.Abstr(), interpolant)
	n.SetState(state.WithAbstr(strengthened))
	return strengthened
}

// Drops every covering by the node that no longer holds after the node was strengthened.
// The nodes that lose their covering are appended to uncovered.
func (d Domain[C, A, B, Act, P]) maintainCoverage(g *arg.ARG[analysis.ItpState[C, A], Act], node arg.NodeID, uncovered *[]arg.NodeID) {
	abstr := g.Node(node).State().Abstr()
	for _, covered := range g.Node(node).CoveredNodes() {
		if !d.Lattice.IsLeq(g.Node(covered).State().Abstr(), abstr) {
			g.UnsetCoveringNode(covered)
			*uncovered = append(*uncovered, covered)
		}
	}
}
