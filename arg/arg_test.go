package arg

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/exp/slices"
)

type mockState struct {
	name   string
	bottom bool
}

func (ms mockState) IsBottom() bool { return ms.bottom }

func (ms mockState) String() string { return ms.name }

func TestARGCreateNodes(t *testing.T) {
	// Build a small ARG and check the tree structure
	g := New[mockState, string](1)
	root := g.CreateInitNode(mockState{name: "s0"}, false)
	a := g.CreateSuccNode(root, "a", mockState{name: "s1"}, false)
	b := g.CreateSuccNode(root, "b", mockState{name: "s2"}, false)
	c := g.CreateSuccNode(a, "c", mockState{name: "s3"}, true)

	if g.Len() != 4 {
		t.Fatalf("Added four nodes to the ARG. Has length: %v", g.Len())
	}
	if !g.Node(root).IsInit() {
		t.Fatalf("Node %v should be an initial node", root)
	}
	if g.Node(c).Depth() != 2 {
		t.Errorf("Expected node %v to have depth 2. Got: %v", c, g.Node(c).Depth())
	}
	if !g.Node(c).IsTarget() {
		t.Errorf("Expected node %v to be a target", c)
	}
	edge, ok := g.Node(b).InEdge()
	if !ok {
		t.Fatalf("Expected node %v to have an incoming edge", b)
	}
	if edge.Source != root || edge.Action != "b" || edge.Target != b {
		t.Errorf("Unexpected in edge of node %v. Got: %v", b, edge)
	}
	if !slices.Equal(g.Node(root).Children(), []NodeID{a, b}) {
		t.Errorf("Expected the children of the root to be %v. Got: %v", []NodeID{a, b}, g.Node(root).Children())
	}
	if !slices.Equal(g.Descendants(root), []NodeID{root, a, c, b}) {
		t.Errorf("Unexpected descendants of the root. Got: %v", g.Descendants(root))
	}
}

func TestARGPath(t *testing.T) {
	g := New[mockState, string](1)
	root := g.CreateInitNode(mockState{name: "s0"}, false)
	a := g.CreateSuccNode(root, "a", mockState{name: "s1"}, false)
	b := g.CreateSuccNode(a, "b", mockState{name: "s2"}, false)

	path := g.Path(b)
	actions := []string{}
	for _, e := range path {
		actions = append(actions, e.Action)
	}
	if !slices.Equal(actions, []string{"a", "b"}) {
		t.Errorf("Expected path [a b]. Got: %v", actions)
	}
	if len(g.Path(root)) != 0 {
		t.Errorf("Expected the path to an initial node to be empty. Got: %v", g.Path(root))
	}
}

func TestARGCoverage(t *testing.T) {
	g := New[mockState, string](1)
	root := g.CreateInitNode(mockState{name: "s0"}, false)
	a := g.CreateSuccNode(root, "a", mockState{name: "s1"}, false)
	b := g.CreateSuccNode(root, "b", mockState{name: "s1"}, false)
	g.MarkExpanded(root)
	g.MarkExpanded(a)

	g.SetCoveringNode(b, a)
	if !g.Node(b).IsCovered() {
		t.Fatalf("Expected node %v to be covered", b)
	}
	if coverer, ok := g.Node(b).CoveringNode(); !ok || coverer != a {
		t.Errorf("Expected node %v to be covered by %v. Got: %v", b, a, coverer)
	}
	if !slices.Equal(g.Node(a).CoveredNodes(), []NodeID{b}) {
		t.Errorf("Expected node %v to cover %v. Got: %v", a, b, g.Node(a).CoveredNodes())
	}
	if !g.IsComplete() {
		t.Errorf("Expected the ARG to be complete")
	}

	g.UnsetCoveringNode(b)
	if g.Node(b).IsCovered() {
		t.Errorf("Expected node %v to be uncovered", b)
	}
	if len(g.Node(a).CoveredNodes()) != 0 {
		t.Errorf("Expected node %v to cover no nodes. Got: %v", a, g.Node(a).CoveredNodes())
	}
	if g.IsComplete() {
		t.Errorf("Expected the ARG to be incomplete after uncovering node %v", b)
	}
}

func TestARGCoveredNodeCanNotCover(t *testing.T) {
	g := New[mockState, string](1)
	root := g.CreateInitNode(mockState{name: "s0"}, false)
	a := g.CreateSuccNode(root, "a", mockState{name: "s1"}, false)
	b := g.CreateSuccNode(root, "b", mockState{name: "s1"}, false)
	g.SetCoveringNode(a, root)

	defer func() {
		if recover() == nil {
			t.Errorf("Expected a panic when covering with a covered node")
		}
	}()
	g.SetCoveringNode(b, a)
}

func TestARGExport(t *testing.T) {
	g := New[mockState, string](1)
	root := g.CreateInitNode(mockState{name: "s0"}, false)
	g.CreateSuccNode(root, "a", mockState{name: "s1"}, false)
	g.CreateSuccNode(root, "b", mockState{name: "s2"}, false)

	var buffer bytes.Buffer
	g.Export(&buffer)
	expected := "(\"1 s1\",\"2 s2\")\"0 s0\";\n"
	if buffer.String() != expected {
		t.Errorf("Unexpected Newick export. Expected: %q Got: %q", expected, buffer.String())
	}
	if !strings.HasPrefix(g.String(), "0 s0\n-1 s1\n") {
		t.Errorf("Unexpected string representation. Got: %q", g.String())
	}
}
