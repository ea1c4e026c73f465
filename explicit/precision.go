package explicit

import (
	"fmt"
	"log"
)

// Controls how precisely the abstract transition function tracks the values.
//
// The universe is partitioned into cells. The abstract image of a set is widened to
// the union of every cell it touches.
type Precision struct {
	cells []Set
}

// The precision tracking every value on its own
func (sys *System) Exact() Precision {
	return sys.Cells(sys.Size)
}

// The precision splitting the values into k cells of consecutive values.
//
// k is clamped to 1..Size. Cells(1) does not distinguish any values.
func (sys *System) Cells(k int) Precision {
	if k < 1 {
		k = 1
	}
	if k > sys.Size {
		k = sys.Size
	}
	cells := make([]Set, k)
	for v := 0; v < sys.Size; v++ {
		i := v * k / sys.Size
		cells[i] = cells[i].With(v)
	}
	return Precision{cells: cells}
}

// Returns the union of the cells intersecting the set
func (p Precision) Close(s Set) Set {
	if len(p.cells) == 0 {
		log.Panicf("explicit: the precision has no cells. Use System.Exact or System.Cells")
	}
	var out Set
	for _, cell := range p.cells {
		if !cell.Intersect(s).IsEmpty() {
			out = out.Union(cell)
		}
	}
	return out
}

func (p Precision) String() string {
	return fmt.Sprintf("Precision%v", p.cells)
}
