package intervals

import (
	"github.com/chazu/partition/pkg/partition"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the distance under which two abscissas are equal.
const DefaultTolerance = 1e-10

// Point is an abscissa on the real line.
type Point float64

// OrientedPoint is the hyperplane of the real line: a location plus a
// direction. When direct, the plus side is x > location.
type OrientedPoint struct {
	location  float64
	direct    bool
	tolerance float64
}

var _ partition.Hyperplane[Point] = (*OrientedPoint)(nil)

// NewOrientedPoint returns a cut at location.
func NewOrientedPoint(location float64, direct bool, tolerance float64) *OrientedPoint {
	return &OrientedPoint{location: location, direct: direct, tolerance: tolerance}
}

func (op *OrientedPoint) Location() float64 { return op.location }

func (op *OrientedPoint) IsDirect() bool { return op.direct }

func (op *OrientedPoint) Tolerance() float64 { return op.tolerance }

func (op *OrientedPoint) Offset(p Point) float64 {
	delta := float64(p) - op.location
	if op.direct {
		return delta
	}
	return -delta
}

func (op *OrientedPoint) WholeHyperplane() partition.SubHyperplane[Point] {
	return &SubOrientedPoint{hyperplane: op}
}

func (op *OrientedPoint) SameOrientationAs(other partition.Hyperplane[Point]) bool {
	return op.direct == other.(*OrientedPoint).direct
}

func (op *OrientedPoint) Reverse() partition.Hyperplane[Point] {
	return NewOrientedPoint(op.location, !op.direct, op.tolerance)
}

func (op *OrientedPoint) Copy() partition.Hyperplane[Point] {
	c := *op
	return &c
}

// SubOrientedPoint is the only sub-hyperplane of an oriented point: the
// point itself.
type SubOrientedPoint struct {
	hyperplane *OrientedPoint
}

var _ partition.SubHyperplane[Point] = (*SubOrientedPoint)(nil)

func (s *SubOrientedPoint) Hyperplane() partition.Hyperplane[Point] { return s.hyperplane }

func (s *SubOrientedPoint) side(h partition.Hyperplane[Point]) partition.Side {
	offset := h.Offset(Point(s.hyperplane.location))
	switch {
	case scalar.EqualWithinAbs(offset, 0, h.Tolerance()):
		return partition.SideHyper
	case offset < 0:
		return partition.SideMinus
	default:
		return partition.SidePlus
	}
}

func (s *SubOrientedPoint) Side(h partition.Hyperplane[Point]) partition.Side {
	return s.side(h)
}

func (s *SubOrientedPoint) Split(h partition.Hyperplane[Point]) (minus, plus partition.SubHyperplane[Point]) {
	switch s.side(h) {
	case partition.SideMinus:
		return s, nil
	case partition.SidePlus:
		return nil, s
	default:
		return nil, nil
	}
}

// Size is zero: a point has no extent.
func (s *SubOrientedPoint) Size() float64 { return 0 }

func (s *SubOrientedPoint) IsEmpty() bool { return false }

func (s *SubOrientedPoint) Copy() partition.SubHyperplane[Point] {
	return &SubOrientedPoint{hyperplane: s.hyperplane.Copy().(*OrientedPoint)}
}

func (s *SubOrientedPoint) Reunite(other partition.SubHyperplane[Point]) partition.SubHyperplane[Point] {
	return s.Copy()
}
