package explicit

import (
	"math/bits"
	"strconv"
	"strings"
)

// The largest number of values a System can have
const MaxSize = 64

// A set of values of the variable. Value i is in the set if bit i is set.
//
// Set is the abstract domain of the analysis. The empty set is bottom.
type Set uint64

// Returns the set of all values below size
func Universe(size int) Set {
	if size >= MaxSize {
		return Set(^uint64(0))
	}
	return Set(uint64(1)<<uint(size) - 1)
}

func SetOf(vals ...int) Set {
	var s Set
	for _, v := range vals {
		s = s.With(v)
	}
	return s
}

func (s Set) Contains(v int) bool {
	return v >= 0 && v < MaxSize && s&(1<<uint(v)) != 0
}

func (s Set) With(v int) Set {
	return s | 1<<uint(v)
}

func (s Set) Union(o Set) Set     { return s | o }
func (s Set) Intersect(o Set) Set { return s & o }
func (s Set) Minus(o Set) Set     { return s &^ o }
func (s Set) IsEmpty() bool       { return s == 0 }
func (s Set) IsBottom() bool      { return s == 0 }
func (s Set) IsSubset(o Set) bool { return s&^o == 0 }
func (s Set) Len() int            { return bits.OnesCount64(uint64(s)) }

// Returns the values in increasing order
func (s Set) Values() []int {
	vals := make([]int, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		vals = append(vals, bits.TrailingZeros64(rest))
	}
	return vals
}

func (s Set) String() string {
	out := strings.Builder{}
	out.WriteString("{")
	for i, v := range s.Values() {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(strconv.Itoa(v))
	}
	out.WriteString("}")
	return out.String()
}

// A refutation obligation: the values a node must not reach.
type Obligation Set

func (o Obligation) String() string {
	return "not " + Set(o).String()
}
