package lazy

import (
	"lazymc/analysis"
	"lazymc/arg"
)

// Decides coverage and handles infeasible successors for the Abstractor.
type AlgorithmStrategy[S analysis.TargetState, Act any, K comparable] interface {
	// The key used to find the candidates that may cover a state
	Projection(state S) K
	// Cheap check of whether the coverer may cover the coveree
	MightCover(g *arg.ARG[S, Act], coveree, coverer arg.NodeID) bool
	// Attempt to cover the coveree with the coverer.
	// The nodes whose covering was dropped as a side effect are appended to uncovered.
	Cover(g *arg.ARG[S, Act], coveree, coverer arg.NodeID, uncovered *[]arg.NodeID)
	// Refine after taking the action in the node led to the infeasible successor.
	// The nodes whose covering was dropped as a side effect are appended to uncovered.
	Block(g *arg.ARG[S, Act], node arg.NodeID, action Act, succ S, uncovered *[]arg.NodeID)
}
