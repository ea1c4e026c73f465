package analysis

// Computes the successors of a state when the action is taken under the precision.
type TransFunc[S, Act, P any] interface {
	SuccStates(state S, action Act, prec P) []S
}

// Computes the states from which the action leads into the provided state under the precision.
//
// Used on refutation obligations during refinement. There may be several predecessors
// when the obligation can be reached through the action in more than one way.
type InvTransFunc[B, Act, P any] interface {
	PreStates(state B, action Act, prec P) []B
}

// Produces the initial states of the analysis.
type InitFunc[S, P any] interface {
	InitStates(prec P) []S
}

// The labelled transition system of the modeled system.
//
// EnabledActions returns the actions enabled in the state. The result must be finite.
type Lts[S, Act any] interface {
	EnabledActions(state S) []Act
}

// Precision for analyses whose granularity is fixed.
type UnitPrec struct{}

func (UnitPrec) String() string {
	return "UnitPrec"
}
