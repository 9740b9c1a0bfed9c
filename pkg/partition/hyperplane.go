package partition

// Point is a coordinate in some embedding space. The engine never looks
// inside a point; only the space's hyperplanes do.
type Point interface{}

// Side is the position of a sub-hyperplane relative to a hyperplane.
type Side int

const (
	SideMinus Side = iota // entirely below
	SidePlus              // entirely above
	SideBoth              // crosses the hyperplane
	SideHyper             // lies on the hyperplane
)

func (s Side) String() string {
	switch s {
	case SideMinus:
		return "minus"
	case SidePlus:
		return "plus"
	case SideBoth:
		return "both"
	case SideHyper:
		return "hyper"
	default:
		return "unknown"
	}
}

// Hyperplane is an oriented cut splitting the space into a minus half and a
// plus half.
type Hyperplane[P Point] interface {
	// Offset is negative below the hyperplane and positive above it.
	// Points with |Offset| <= Tolerance are on it.
	Offset(p P) float64
	Tolerance() float64
	// WholeHyperplane returns a sub-hyperplane covering the whole hyperplane.
	WholeHyperplane() SubHyperplane[P]
	SameOrientationAs(other Hyperplane[P]) bool
	// Reverse returns the same hyperplane with minus and plus swapped.
	Reverse() Hyperplane[P]
	Copy() Hyperplane[P]
}

// SubHyperplane is a bounded patch of a hyperplane. Cuts stored in tree
// nodes are sub-hyperplanes fitted to the node's cell.
type SubHyperplane[P Point] interface {
	Hyperplane() Hyperplane[P]
	// Split returns the parts below and above h. An empty part is nil; a
	// patch lying on h has no part on either side.
	Split(h Hyperplane[P]) (minus, plus SubHyperplane[P])
	Side(h Hyperplane[P]) Side
	// Size is the measure of the patch within its hyperplane.
	Size() float64
	IsEmpty() bool
	Copy() SubHyperplane[P]
	// Reunite merges a patch of the same hyperplane into this one.
	Reunite(other SubHyperplane[P]) SubHyperplane[P]
}
