package lattice

// A bounded lattice of abstraction elements ordered by entailment.
//
// IsLeq(a, b) is true if a entails b, i.e. a is at least as precise as b.
// Top is the least precise element. Meet returns the most precise element entailed by both arguments.
type Lattice[A any] interface {
	Top() A
	Meet(a, b A) A
	IsLeq(a, b A) bool
}

// Connects the abstract domain A with the interpolation domain B.
//
// An element of B is a refutation obligation: a set of states a node must not reach.
type Interpolator[A, B any] interface {
	// Convert an abstraction element to the obligation describing the same states
	ToItpDom(a A) B
	// The obligation describing every state not described by the abstraction element
	Complement(a A) B
	// True if no state described by a satisfies b
	Refutes(a A, b B) bool
	// Returns an element that is entailed by a and refutes b.
	// Only defined if a refutes b.
	Interpolate(a A, b B) A
}

// Lifts a concrete state to its best abstraction
type Concretizer[C, A any] interface {
	Concretize(c C) A
}
