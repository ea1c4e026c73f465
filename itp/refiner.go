package itp

import (
	"log"

	"lazymc/analysis"
	"lazymc/arg"
)

// A refinement strategy.
//
// Block strengthens the abstraction along the path from the root to the node, so that the
// abstract component of the node refutes the obligation. Every node whose covering was dropped
// because of the strengthening is appended to uncovered.
//
// Block returns the new abstract component of the node. It refutes the obligation and is never
// weaker than the component before the call. If the component already refutes the obligation it
// is returned unchanged and the ARG is not modified.
type Refiner[C analysis.ConcrState, A analysis.State, B any, Act any] interface {
	Block(g *arg.ARG[analysis.ItpState[C, A], Act], node arg.NodeID, obligation B, uncovered *[]arg.NodeID) A
}

// Refines by recomputing the abstraction forward along the path.
//
// The obligation is pushed backward to the parent, the parent is blocked first,
// and the interpolant of the node is computed from the forward image of the strengthened parent.
type FwRefiner[C analysis.ConcrState, A analysis.State, B any, Act any, P any, PA any] struct {
	Domain[C, A, B, Act, P]

	transFunc analysis.TransFunc[A, Act, PA]
	abstrPrec PA
}

// Create a forward refiner.
//
// transFunc is the transition function of the abstract domain. Under abstrPrec it must return exactly
// one successor for every abstraction element and action.
func NewFwRefiner[C analysis.ConcrState, A analysis.State, B any, Act any, P any, PA any](d Domain[C, A, B, Act, P], transFunc analysis.TransFunc[A, Act, PA], abstrPrec PA) *FwRefiner[C, A, B, Act, P, PA] {
	d.validate()
	if transFunc == nil {
		log.Panicf("itp: the forward refiner requires a transition function")
	}
	return &FwRefiner[C, A, B, Act, P, PA]{
		Domain:    d,
		transFunc: transFunc,
		abstrPrec: abstrPrec,
	}
}

func (r *FwRefiner[C, A, B, Act, P, PA]) Block(g *arg.ARG[analysis.ItpState[C, A], Act], node arg.NodeID, obligation B, uncovered *[]arg.NodeID) A {
	n := g.Node(node)
	current := n.State().Abstr()
	if r.Interpolator.Refutes(current, obligation) {
		return current
	}

	var interpolant A
	if edge, ok := n.InEdge(); ok {
		interpolant = r.Lattice.Top()
		pre := r.InvTransFunc.PreStates(obligation, edge.Action, r.Prec)
		if len(pre) == 0 {
			// The obligation can not be reached through the action, so the image of the parent refutes it as it is
			parentAbstr := g.Node(edge.Source).State().Abstr()
			interpolant = r.Interpolator.Interpolate(r.post(parentAbstr, edge.Action), obligation)
		}
		for _, preObligation := range pre {
			preAbstr := r.Block(g, edge.Source, preObligation, uncovered)
			i := r.Interpolator.Interpolate(r.post(preAbstr, edge.Action), obligation)
			// The node must refute the obligation however it is reached
			interpolant = r.Lattice.Meet(i, interpolant)
		}
	} else {
		abstr := r.Concretizer.Concretize(n.State().Concr())
		interpolant = r.Interpolator.Interpolate(abstr, obligation)
	}

	strengthened := r.strengthen(g, node, interpolant)
	r.maintainCoverage(g, node, uncovered)
	return strengthened
}

func (r *FwRefiner[C, A, B, Act, P, PA]) post(abstr A, action Act) A {
	post := r.transFunc.SuccStates(abstr, action, r.abstrPrec)
	if len(post) != 1 {
		log.Panicf("itp: expected exactly one successor of %v under %v. Got: %v", abstr, action, post)
	}
	return post[0]
}

// Refines by walking the obligation backward to the root before strengthening.
//
// Every predecessor obligation is blocked at the parent, which makes the parent refute everything
// leading into the obligation. The interpolant of the node is then computed from its own concrete
// component, so no abstract transition function is needed.
//
// The interpolator should return the weakest interpolant it can find. Coverage decisions rely on the
// image of a strengthened parent being entailed by the strengthened child.
type BwRefiner[C analysis.ConcrState, A analysis.State, B any, Act any, P any] struct {
	Domain[C, A, B, Act, P]
}

func NewBwRefiner[C analysis.ConcrState, A analysis.State, B any, Act any, P any](d Domain[C, A, B, Act, P]) *BwRefiner[C, A, B, Act, P] {
	d.validate()
	return &BwRefiner[C, A, B, Act, P]{Domain: d}
}

func (r *BwRefiner[C, A, B, Act, P]) Block(g *arg.ARG[analysis.ItpState[C, A], Act], node arg.NodeID, obligation B, uncovered *[]arg.NodeID) A {
	n := g.Node(node)
	current := n.State().Abstr()
	if r.Interpolator.Refutes(current, obligation) {
		return current
	}

	if edge, ok := n.InEdge(); ok {
		for _, preObligation := range r.InvTransFunc.PreStates(obligation, edge.Action, r.Prec) {
			r.Block(g, edge.Source, preObligation, uncovered)
		}
	}
	abstr := r.Concretizer.Concretize(n.State().Concr())
	interpolant := r.Interpolator.Interpolate(abstr, obligation)

	strengthened := r.strengthen(g, node, interpolant)
	r.maintainCoverage(g, node, uncovered)
	return strengthened
}
