package explicit

import (
	"errors"
	"fmt"

	"lazymc/analysis"

	"golang.org/x/exp/slices"
)

var ErrInvalidModel = errors.New("explicit: invalid model")

// A guarded transition between two locations.
//
// The edge is enabled for the values in Guard. Taking it maps value x to update[x].
type Edge struct {
	Label string
	From  string
	To    string
	Guard Set

	update []int
}

// Applies the edge to the values
func (e *Edge) Post(vals Set) Set {
	var out Set
	for _, v := range vals.Intersect(e.Guard).Values() {
		out = out.With(e.update[v])
	}
	return out
}

// Returns the values from which taking the edge leads into the target values
func (e *Edge) Pre(target Set) Set {
	var out Set
	for _, v := range e.Guard.Values() {
		if target.Contains(e.update[v]) {
			out = out.With(v)
		}
	}
	return out
}

func (e *Edge) String() string {
	return e.Label
}

// A transition system over named locations and one variable ranging over 0..Size-1.
type System struct {
	Name string
	Size int

	initLoc  string
	initVals Set

	locations []string
	errors    map[string]bool
	outgoing  map[string][]*Edge
}

func (sys *System) Universe() Set {
	return Universe(sys.Size)
}

// Returns the locations in the order they were first mentioned
func (sys *System) Locations() []string {
	return slices.Clone(sys.locations)
}

func (sys *System) IsErrorLocation(loc string) bool {
	return sys.errors[loc]
}

// Returns the edges leaving the location
func (sys *System) Outgoing(loc string) []*Edge {
	return sys.outgoing[loc]
}

func (sys *System) state(loc string, vals Set) State {
	return State{Loc: loc, Vals: vals, err: sys.errors[loc]}
}

// The initial concrete state
func (sys *System) Init() State {
	return sys.state(sys.initLoc, sys.initVals)
}

func (sys *System) addLocation(loc string) {
	if !slices.Contains(sys.locations, loc) {
		sys.locations = append(sys.locations, loc)
	}
}

// Build a System from the model. Returns an error wrapping ErrInvalidModel if the model is malformed.
func Build(m Model) (*System, error) {
	if m.Size < 1 || m.Size > MaxSize {
		return nil, fmt.Errorf("%w: size must be between 1 and %v. Got: %v", ErrInvalidModel, MaxSize, m.Size)
	}
	if m.Init.Location == "" {
		return nil, fmt.Errorf("%w: missing initial location", ErrInvalidModel)
	}
	sys := &System{
		Name:     m.Name,
		Size:     m.Size,
		initLoc:  m.Init.Location,
		errors:   make(map[string]bool),
		outgoing: make(map[string][]*Edge),
	}

	initVals, err := sys.toSet(m.Init.Values, "initial values")
	if err != nil {
		return nil, err
	}
	if m.Init.Values == nil {
		initVals = sys.Universe()
	}
	if initVals.IsEmpty() {
		return nil, fmt.Errorf("%w: the initial values must not be empty", ErrInvalidModel)
	}
	sys.initVals = initVals
	sys.addLocation(m.Init.Location)

	for _, loc := range m.Errors {
		sys.errors[loc] = true
		sys.addLocation(loc)
	}

	for i, em := range m.Edges {
		edge, err := sys.buildEdge(i, em)
		if err != nil {
			return nil, err
		}
		sys.addLocation(edge.From)
		sys.addLocation(edge.To)
		sys.outgoing[edge.From] = append(sys.outgoing[edge.From], edge)
	}
	return sys, nil
}

func (sys *System) buildEdge(i int, em EdgeModel) (*Edge, error) {
	label := em.Label
	if label == "" {
		label = fmt.Sprintf("e%v", i)
	}
	if em.From == "" || em.To == "" {
		return nil, fmt.Errorf("%w: edge %v must have a source and a target location", ErrInvalidModel, label)
	}
	guard, err := sys.toSet(em.Guard, "guard of edge "+label)
	if err != nil {
		return nil, err
	}
	if em.Guard == nil {
		guard = sys.Universe()
	}

	update := make([]int, sys.Size)
	updates := 0
	for v := range update {
		update[v] = v
	}
	if em.Assign != nil {
		updates++
		if *em.Assign < 0 || *em.Assign >= sys.Size {
			return nil, fmt.Errorf("%w: edge %v assigns %v outside of 0..%v", ErrInvalidModel, label, *em.Assign, sys.Size-1)
		}
		for v := range update {
			update[v] = *em.Assign
		}
	}
	if em.Add != nil {
		updates++
		for v := range update {
			// Wrap around in both directions
			update[v] = ((v+*em.Add)%sys.Size + sys.Size) % sys.Size
		}
	}
	if em.Map != nil {
		updates++
		if len(em.Map) != sys.Size {
			return nil, fmt.Errorf("%w: the map of edge %v must have %v entries. Got: %v", ErrInvalidModel, label, sys.Size, len(em.Map))
		}
		for v, to := range em.Map {
			if to < 0 || to >= sys.Size {
				return nil, fmt.Errorf("%w: edge %v maps %v to %v outside of 0..%v", ErrInvalidModel, label, v, to, sys.Size-1)
			}
			update[v] = to
		}
	}
	if updates > 1 {
		return nil, fmt.Errorf("%w: edge %v has more than one of assign, add and map", ErrInvalidModel, label)
	}

	return &Edge{
		Label:  label,
		From:   em.From,
		To:     em.To,
		Guard:  guard,
		update: update,
	}, nil
}

func (sys *System) toSet(vals []int, what string) (Set, error) {
	var s Set
	for _, v := range vals {
		if v < 0 || v >= sys.Size {
			return 0, fmt.Errorf("%w: %v contain %v outside of 0..%v", ErrInvalidModel, what, v, sys.Size-1)
		}
		s = s.With(v)
	}
	return s, nil
}

// A concrete state of a System: a location and the exact set of values the variable may have there.
type State struct {
	Loc  string
	Vals Set

	err bool
}

func (s State) IsBottom() bool {
	return s.Vals.IsEmpty()
}

func (s State) IsError() bool {
	return s.err && !s.IsBottom()
}

func (s State) String() string {
	return fmt.Sprintf("%v %v", s.Loc, s.Vals)
}

// The state of the analysis: a concrete state paired with its abstraction
type ItpState = analysis.ItpState[State, Set]
