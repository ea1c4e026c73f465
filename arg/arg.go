package arg

import (
	"fmt"
	"io"
	"log"
	"strings"

	"lazymc/analysis"

	"golang.org/x/exp/slices"
)

// Identifies a node of an ARG. Ids are stable for the lifetime of the ARG.
type NodeID int

// Used to signal that no node is referenced
const NoNode NodeID = -1

// An Abstract Reachability Graph.
//
// The ARG owns all of its nodes. Nodes reference each other through NodeIDs,
// both for the tree edges and for the coverage relation.
// The tree edges form a forest rooted at the initial nodes.
type ARG[S analysis.State, Act any] struct {
	id        int
	nodes     []*Node[S, Act]
	initNodes []NodeID
}

// Create an empty ARG. The id is used to distinguish ARGs created by the same abstractor.
func New[S analysis.State, Act any](id int) *ARG[S, Act] {
	return &ARG[S, Act]{
		id:        id,
		nodes:     []*Node[S, Act]{},
		initNodes: []NodeID{},
	}
}

func (g *ARG[S, Act]) ID() int {
	return g.id
}

// Returns the total number of nodes in the ARG
func (g *ARG[S, Act]) Len() int {
	return len(g.nodes)
}

// Returns the node with the provided id
func (g *ARG[S, Act]) Node(id NodeID) *Node[S, Act] {
	if id < 0 || int(id) >= len(g.nodes) {
		log.Panicf("ARG %v: node %v does not exist", g.id, id)
	}
	return g.nodes[id]
}

func (g *ARG[S, Act]) InitNodes() []NodeID {
	return slices.Clone(g.initNodes)
}

// Returns the ids of all nodes in creation order
func (g *ARG[S, Act]) Nodes() []NodeID {
	ids := make([]NodeID, len(g.nodes))
	for i := range g.nodes {
		ids[i] = NodeID(i)
	}
	return ids
}

func (g *ARG[S, Act]) newNode(state S, target bool, depth int) *Node[S, Act] {
	n := &Node[S, Act]{
		id:           NodeID(len(g.nodes)),
		state:        state,
		target:       target,
		depth:        depth,
		coveringNode: NoNode,
		coveredNodes: []NodeID{},
		children:     []NodeID{},
	}
	g.nodes = append(g.nodes, n)
	return n
}

// Adds a root to the ARG
func (g *ARG[S, Act]) CreateInitNode(state S, target bool) NodeID {
	n := g.newNode(state, target, 0)
	g.initNodes = append(g.initNodes, n.id)
	return n.id
}

// Adds a new node as a child of parent, reached by taking the action.
//
// Returns the id of the new node.
func (g *ARG[S, Act]) CreateSuccNode(parent NodeID, action Act, state S, target bool) NodeID {
	p := g.Node(parent)
	if p.IsCovered() {
		log.Panicf("ARG %v: can not add successor to covered node %v", g.id, parent)
	}
	n := g.newNode(state, target, p.depth+1)
	n.inEdge = &Edge[Act]{Source: parent, Action: action, Target: n.id}
	p.children = append(p.children, n.id)
	return n.id
}

// Let coverer cover coveree. Any previous covering of coveree is dropped.
func (g *ARG[S, Act]) SetCoveringNode(coveree, coverer NodeID) {
	if coveree == coverer {
		log.Panicf("ARG %v: node %v can not cover itself", g.id, coveree)
	}
	v, w := g.Node(coveree), g.Node(coverer)
	if w.IsCovered() {
		log.Panicf("ARG %v: covered node %v can not cover node %v", g.id, coverer, coveree)
	}
	if len(v.coveredNodes) > 0 {
		log.Panicf("ARG %v: node %v covers other nodes and can not be covered", g.id, coveree)
	}
	g.UnsetCoveringNode(coveree)
	v.coveringNode = coverer
	w.coveredNodes = append(w.coveredNodes, coveree)
}

// Remove the covering of the node, if any
func (g *ARG[S, Act]) UnsetCoveringNode(coveree NodeID) {
	v := g.Node(coveree)
	if v.coveringNode == NoNode {
		return
	}
	w := g.Node(v.coveringNode)
	if i := slices.Index(w.coveredNodes, coveree); i >= 0 {
		w.coveredNodes = slices.Delete(w.coveredNodes, i, i+1)
	}
	v.coveringNode = NoNode
}

// Returns the edges leading from the root of the node's tree to the node
func (g *ARG[S, Act]) Path(id NodeID) []Edge[Act] {
	n := g.Node(id)
	path := make([]Edge[Act], n.depth)
	for n.inEdge != nil {
		path[n.depth-1] = *n.inEdge
		n = g.Node(n.inEdge.Source)
	}
	return path
}

// Returns the ids of all nodes in the subtree rooted at the node, including the node
func (g *ARG[S, Act]) Descendants(id NodeID) []NodeID {
	out := []NodeID{id}
	for _, child := range g.Node(id).children {
		out = append(out, g.Descendants(child)...)
	}
	return out
}

// True if every node is either covered, expanded or infeasible
func (g *ARG[S, Act]) IsComplete() bool {
	for _, n := range g.nodes {
		if !n.IsCovered() && !n.expanded && n.IsFeasible() {
			return false
		}
	}
	return true
}

// Marks the node as expanded. Expanded nodes can cover other nodes.
func (g *ARG[S, Act]) MarkExpanded(id NodeID) {
	n := g.Node(id)
	if n.IsCovered() {
		log.Panicf("ARG %v: covered node %v can not be expanded", g.id, id)
	}
	n.expanded = true
}

// String representation of the ARG. One line per node, indented by depth.
func (g *ARG[S, Act]) String() string {
	out := strings.Builder{}
	for _, root := range g.initNodes {
		g.writeNode(&out, root)
	}
	return out.String()
}

func (g *ARG[S, Act]) writeNode(out *strings.Builder, id NodeID) {
	n := g.Node(id)
	for i := 0; i < n.depth; i++ {
		out.WriteString("-")
	}
	out.WriteString(n.String())
	out.WriteString("\n")
	for _, child := range n.children {
		g.writeNode(out, child)
	}
}

// Returns the Newick representation of the tree rooted at the node.
// Covered nodes are annotated with the id of their coverer.
func (g *ARG[S, Act]) Newick(id NodeID) string {
	n := g.Node(id)
	out := strings.Builder{}
	if len(n.children) > 0 {
		out.WriteString("(")
		for i, child := range n.children {
			if i > 0 {
				out.WriteString(",")
			}
			out.WriteString(g.Newick(child))
		}
		out.WriteString(")")
	}
	out.WriteString(fmt.Sprintf("\"%v\"", n.label()))
	if n.inEdge == nil {
		out.WriteString(";")
	}
	return out.String()
}

// Write the Newick representation of every tree in the ARG to the writer, one tree per line
func (g *ARG[S, Act]) Export(wrt io.Writer) {
	for _, root := range g.initNodes {
		fmt.Fprintln(wrt, g.Newick(root))
	}
}
