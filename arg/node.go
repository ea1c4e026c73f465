package arg

import (
	"fmt"

	"lazymc/analysis"

	"golang.org/x/exp/slices"
)

// An edge of the ARG. Source reaches Target by taking Action.
type Edge[Act any] struct {
	Source NodeID
	Action Act
	Target NodeID
}

// A vertex of the ARG.
//
// Nodes are created and owned by an ARG. The state of a node may be replaced
// with a stronger one during refinement, but the node itself is never removed.
type Node[S analysis.State, Act any] struct {
	id    NodeID
	state S

	// nil for initial nodes
	inEdge   *Edge[Act]
	children []NodeID

	coveringNode NodeID
	coveredNodes []NodeID

	target   bool
	expanded bool
	depth    int
}

func (n *Node[S, Act]) ID() NodeID {
	return n.id
}

func (n *Node[S, Act]) State() S {
	return n.state
}

func (n *Node[S, Act]) SetState(state S) {
	n.state = state
}

// Returns the edge from the parent of the node. The boolean is false for initial nodes.
func (n *Node[S, Act]) InEdge() (Edge[Act], bool) {
	if n.inEdge == nil {
		return Edge[Act]{}, false
	}
	return *n.inEdge, true
}

// Returns the node covering this node. The boolean is false if the node is not covered.
func (n *Node[S, Act]) CoveringNode() (NodeID, bool) {
	return n.coveringNode, n.coveringNode != NoNode
}

// Returns the nodes covered by this node
func (n *Node[S, Act]) CoveredNodes() []NodeID {
	return slices.Clone(n.coveredNodes)
}

func (n *Node[S, Act]) Children() []NodeID {
	return slices.Clone(n.children)
}

func (n *Node[S, Act]) IsCovered() bool {
	return n.coveringNode != NoNode
}

func (n *Node[S, Act]) IsTarget() bool {
	return n.target
}

func (n *Node[S, Act]) IsFeasible() bool {
	return !n.state.IsBottom()
}

func (n *Node[S, Act]) IsExpanded() bool {
	return n.expanded
}

func (n *Node[S, Act]) IsInit() bool {
	return n.inEdge == nil
}

func (n *Node[S, Act]) Depth() int {
	return n.depth
}

func (n *Node[S, Act]) label() string {
	if n.IsCovered() {
		return fmt.Sprintf("%v %v covered by %v", n.id, n.state, n.coveringNode)
	}
	return fmt.Sprintf("%v %v", n.id, n.state)
}

func (n *Node[S, Act]) String() string {
	out := n.label()
	if n.target {
		out += " target"
	}
	return out
}
