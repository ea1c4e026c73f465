package itp

import (
	"log"

	"lazymc/analysis"
	"lazymc/arg"
)

// The algorithm strategy of lazy abstraction with interpolants.
//
// Coverage is decided on the abstract components, and infeasible successors are
// handled by blocking the expanded node with the configured refiner.
type Strategy[C analysis.ConcrState, A analysis.State, B any, Act any, P any, K comparable] struct {
	Domain[C, A, B, Act, P]

	refiner    Refiner[C, A, B, Act]
	projection func(analysis.ItpState[C, A]) K
}

// Create a Strategy.
//
// The projection groups the nodes that may cover each other. Two nodes are only
// compared for coverage if their projections are equal.
func NewStrategy[C analysis.ConcrState, A analysis.State, B any, Act any, P any, K comparable](d Domain[C, A, B, Act, P], refiner Refiner[C, A, B, Act], projection func(analysis.ItpState[C, A]) K) *Strategy[C, A, B, Act, P, K] {
	d.validate()
	if refiner == nil || projection == nil {
		log.Panicf("itp: the strategy requires a refiner and a projection")
	}
	return &Strategy[C, A, B, Act, P, K]{
		Domain:     d,
		refiner:    refiner,
		projection: projection,
	}
}

func (s *Strategy[C, A, B, Act, P, K]) Projection(state analysis.ItpState[C, A]) K {
	return s.projection(state)
}

// Cheap check of whether covering the coveree with the coverer can succeed.
//
// The coverer must be uncovered, and the concrete component of the coveree must be
// included in the abstraction of the coverer.
func (s *Strategy[C, A, B, Act, P, K]) MightCover(g *arg.ARG[analysis.ItpState[C, A], Act], coveree, coverer arg.NodeID) bool {
	if coveree == coverer || g.Node(coverer).IsCovered() {
		return false
	}
	concr := s.Concretizer.Concretize(g.Node(coveree).State().Concr())
	return s.Lattice.IsLeq(concr, g.Node(coverer).State().Abstr())
}

// Cover the coveree with the coverer.
//
// The coveree is strengthened until its abstraction is entailed by the abstraction of the coverer.
// The refinement may drop other coverings, including the new one if the coverer is an ancestor
// of the coveree. Callers must check whether the coveree is still covered afterwards.
func (s *Strategy[C, A, B, Act, P, K]) Cover(g *arg.ARG[analysis.ItpState[C, A], Act], coveree, coverer arg.NodeID, uncovered *[]arg.NodeID) {
	g.SetCoveringNode(coveree, coverer)
	obligation := s.Interpolator.Complement(g.Node(coverer).State().Abstr())
	s.refiner.Block(g, coveree, obligation, uncovered)
}

// Block the node after taking the action led to the infeasible successor.
//
// The node is strengthened to refute every state in which the action is enabled.
func (s *Strategy[C, A, B, Act, P, K]) Block(g *arg.ARG[analysis.ItpState[C, A], Act], node arg.NodeID, action Act, succ analysis.ItpState[C, A], uncovered *[]arg.NodeID) {
	if !succ.IsBottom() {
		log.Panicf("itp: block called for node %v with the feasible successor %v", node, succ)
	}
	enabled := s.InvTransFunc.PreStates(s.Interpolator.ToItpDom(s.Lattice.Top()), action, s.Prec)
	for _, obligation := range enabled {
		s.refiner.Block(g, node, obligation, uncovered)
	}
}
