package itp

import (
	"testing"

	"lazymc/analysis"
	"lazymc/arg"
	"lazymc/explicit"
)

func intPtr(i int) *int { return &i }

type explicitGraph = arg.ARG[explicit.ItpState, *explicit.Edge]

func explicitDomain(sys *explicit.System) Domain[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge, analysis.UnitPrec] {
	return Domain[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge, analysis.UnitPrec]{
		Lattice:      sys.Lattice(),
		Interpolator: sys.Interpolator(),
		Concretizer:  explicit.Concretizer{},
		InvTransFunc: explicit.InvTransFunc{},
		Prec:         analysis.UnitPrec{},
	}
}

// The refiners under test, by name
func explicitRefiners(sys *explicit.System) map[string]Refiner[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge] {
	d := explicitDomain(sys)
	return map[string]Refiner[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge]{
		"forward":  NewFwRefiner[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge, analysis.UnitPrec, explicit.Precision](d, explicit.AbstrTransFunc{}, sys.Exact()),
		"backward": NewBwRefiner(d),
	}
}

// Two locations l0 and l1 connected by inc, and a second branch from l0 assigning 2.
// The abstraction of every state starts at the top.
func chainSystem(t *testing.T) *explicit.System {
	sys, err := explicit.Build(explicit.Model{
		Name: "chain",
		Size: 8,
		Init: explicit.InitModel{Location: "l0", Values: []int{0}},
		Edges: []explicit.EdgeModel{
			{Label: "inc", From: "l0", To: "l1", Add: intPtr(1)},
			{Label: "two", From: "l0", To: "l1", Assign: intPtr(2)},
			{Label: "inc2", From: "l1", To: "l2", Add: intPtr(1)},
		},
	})
	if err != nil {
		t.Fatalf("Did not expect to receive an error. Got %v", err)
	}
	return sys
}

// Add the successor of the node through the edge with the given label, computed under the precision
func addSucc(t *testing.T, sys *explicit.System, g *explicitGraph, node arg.NodeID, label string, prec explicit.Precision) arg.NodeID {
	for _, e := range sys.Lts().EnabledActions(g.Node(node).State()) {
		if e.Label == label {
			succ := sys.TransFunc().SuccStates(g.Node(node).State(), e, prec)[0]
			return g.CreateSuccNode(node, e, succ, succ.IsTarget())
		}
	}
	t.Fatalf("Edge %v is not enabled in node %v", label, node)
	return arg.NoNode
}

// Snapshot of the abstraction of every node
func abstractions(g *explicitGraph) []explicit.Set {
	out := []explicit.Set{}
	for _, id := range g.Nodes() {
		out = append(out, g.Node(id).State().Abstr())
	}
	return out
}
