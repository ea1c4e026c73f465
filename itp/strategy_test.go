package itp

import (
	"testing"

	"lazymc/analysis"
	"lazymc/arg"
	"lazymc/explicit"
)

func newExplicitStrategy(sys *explicit.System, refiner Refiner[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge]) *Strategy[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge, analysis.UnitPrec, string] {
	return NewStrategy(explicitDomain(sys), refiner, explicit.Projection)
}

func TestStrategyMightCover(t *testing.T) {
	sys := chainSystem(t)
	coarse := sys.Cells(1)
	s := newExplicitStrategy(sys, explicitRefiners(sys)["forward"])

	g := arg.New[explicit.ItpState, *explicit.Edge](1)
	root := g.CreateInitNode(sys.InitFunc().InitStates(coarse)[0], false)
	w := addSucc(t, sys, g, root, "inc", coarse)
	v := addSucc(t, sys, g, root, "two", coarse)
	g.MarkExpanded(root)

	if s.Projection(g.Node(v).State()) != s.Projection(g.Node(w).State()) {
		t.Errorf("Expected both nodes to be at the same location")
	}
	if !s.MightCover(g, v, w) {
		t.Errorf("Expected node %v to possibly cover node %v", w, v)
	}
	if s.MightCover(g, v, v) {
		t.Errorf("Expected a node not to cover itself")
	}

	g.Node(w).SetState(g.Node(w).State().WithAbstr(explicit.SetOf(1)))
	if s.MightCover(g, v, w) {
		t.Errorf("Expected {2} not to be included in {1}")
	}

	g.Node(w).SetState(g.Node(w).State().WithAbstr(sys.Universe()))
	g.SetCoveringNode(w, v)
	if s.MightCover(g, root, w) {
		t.Errorf("Expected the covered node %v not to be a candidate coverer", w)
	}
}

func TestStrategyCover(t *testing.T) {
	sys := chainSystem(t)
	coarse := sys.Cells(1)

	for name, refiner := range explicitRefiners(sys) {
		s := newExplicitStrategy(sys, refiner)
		g := arg.New[explicit.ItpState, *explicit.Edge](1)
		root := g.CreateInitNode(sys.InitFunc().InitStates(coarse)[0], false)
		w := addSucc(t, sys, g, root, "inc", coarse)
		v := addSucc(t, sys, g, root, "two", coarse)
		g.MarkExpanded(root)
		g.MarkExpanded(w)
		g.Node(w).SetState(g.Node(w).State().WithAbstr(sys.Universe().Minus(explicit.SetOf(5))))

		if !s.MightCover(g, v, w) {
			t.Fatalf("%v: Expected node %v to possibly cover node %v", name, w, v)
		}
		uncovered := []arg.NodeID{}
		s.Cover(g, v, w, &uncovered)

		if coverer, ok := g.Node(v).CoveringNode(); !ok || coverer != w {
			t.Errorf("%v: Expected node %v to be covered by %v. Got: %v %v", name, v, w, coverer, ok)
		}
		vAbstr, wAbstr := g.Node(v).State().Abstr(), g.Node(w).State().Abstr()
		if !vAbstr.IsSubset(wAbstr) {
			t.Errorf("%v: Expected %v to be included in %v after covering", name, vAbstr, wAbstr)
		}
		if len(uncovered) != 0 {
			t.Errorf("%v: Expected no uncovered nodes. Got: %v", name, uncovered)
		}
	}
}

func guardedSystem(t *testing.T) *explicit.System {
	sys, err := explicit.Build(explicit.Model{
		Name:   "guarded",
		Size:   8,
		Init:   explicit.InitModel{Location: "l0", Values: []int{0}},
		Errors: []string{"err"},
		Edges: []explicit.EdgeModel{
			{Label: "inc", From: "l0", To: "l1", Add: intPtr(1)},
			{Label: "fail", From: "l1", To: "err", Guard: []int{5}},
		},
	})
	if err != nil {
		t.Fatalf("Did not expect to receive an error. Got %v", err)
	}
	return sys
}

func TestStrategyBlockRefutesTheGuard(t *testing.T) {
	sys := guardedSystem(t)
	coarse := sys.Cells(1)

	for name, refiner := range explicitRefiners(sys) {
		s := newExplicitStrategy(sys, refiner)
		g := arg.New[explicit.ItpState, *explicit.Edge](1)
		root := g.CreateInitNode(sys.InitFunc().InitStates(coarse)[0], false)
		n1 := addSucc(t, sys, g, root, "inc", coarse)

		fail := sys.Outgoing("l1")[0]
		succ := sys.TransFunc().SuccStates(g.Node(n1).State(), fail, coarse)[0]
		if !succ.IsBottom() {
			t.Fatalf("%v: Expected the successor %v to be infeasible", name, succ)
		}

		uncovered := []arg.NodeID{}
		s.Block(g, n1, fail, succ, &uncovered)

		abstr := g.Node(n1).State().Abstr()
		if abstr.Contains(5) {
			t.Errorf("%v: Expected the abstraction %v to exclude the guard", name, abstr)
		}
		again := sys.TransFunc().SuccStates(g.Node(n1).State(), fail, coarse)[0]
		if !again.Abstr().IsBottom() {
			t.Errorf("%v: Expected the abstract successor to be bottom after blocking. Got: %v", name, again)
		}
	}
}

func TestStrategyBlockPanicsOnFeasibleSuccessor(t *testing.T) {
	sys := chainSystem(t)
	coarse := sys.Cells(1)
	s := newExplicitStrategy(sys, explicitRefiners(sys)["backward"])
	g := arg.New[explicit.ItpState, *explicit.Edge](1)
	root := g.CreateInitNode(sys.InitFunc().InitStates(coarse)[0], false)
	inc := sys.Outgoing("l0")[0]
	succ := sys.TransFunc().SuccStates(g.Node(root).State(), inc, coarse)[0]

	defer func() {
		if recover() == nil {
			t.Errorf("Expected Block to panic on a feasible successor")
		}
	}()
	uncovered := []arg.NodeID{}
	s.Block(g, root, inc, succ, &uncovered)
}
