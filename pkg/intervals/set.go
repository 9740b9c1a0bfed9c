// Package intervals realizes partition regions on the real line. A Set is a
// union of intervals, built from bounds and combined with Union,
// Intersection, Difference and Xor.
package intervals

import (
	"math"
	"strings"

	"github.com/chazu/partition/pkg/partition"
)

// Set is a region of the real line.
type Set struct {
	*partition.Region[Point]
	tolerance float64
}

type geometry struct {
	tolerance float64
}

func (g geometry) Dimension() int { return 1 }

func (g geometry) Properties(root *partition.Node[Point]) (float64, Point) {
	if root.IsLeaf() {
		if root.Tag() == partition.TagInside {
			return math.Inf(1), Point(math.NaN())
		}
		return 0, Point(math.NaN())
	}
	var size, sum float64
	for _, i := range appendIntervals(nil, root, math.Inf(-1), math.Inf(1)) {
		size += i.Size()
		sum += i.Size() * i.Barycenter()
	}
	if size == 0 || math.IsInf(size, 0) {
		return size, Point(math.NaN())
	}
	return size, Point(sum / size)
}

// New returns the set [lower, upper] with the default tolerance. Infinite
// bounds are allowed. When lower >= upper the set is empty.
func New(lower, upper float64) *Set {
	return NewWithTolerance(lower, upper, DefaultTolerance)
}

// NewWithTolerance is like New with an explicit tolerance.
func NewWithTolerance(lower, upper, tolerance float64) *Set {
	return FromTree(buildTree(lower, upper, tolerance), tolerance)
}

// Full returns the whole real line.
func Full(tolerance float64) *Set {
	return FromTree(partition.NewLeaf[Point](partition.TagInside), tolerance)
}

// Empty returns the empty set.
func Empty(tolerance float64) *Set {
	return FromTree(partition.NewLeaf[Point](partition.TagOutside), tolerance)
}

// FromTree wraps a tree whose cuts are oriented points. The set takes
// ownership of tree.
func FromTree(tree *partition.Node[Point], tolerance float64) *Set {
	return &Set{
		Region:    partition.NewRegion[Point](tree, geometry{tolerance: tolerance}),
		tolerance: tolerance,
	}
}

// FromIntervals returns the union of the given intervals.
func FromIntervals(tolerance float64, list ...Interval) *Set {
	s := Empty(tolerance)
	for _, i := range list {
		s = Union(s, NewWithTolerance(i.Lower, i.Upper, tolerance))
	}
	return s
}

func buildTree(lower, upper, tolerance float64) *partition.Node[Point] {
	lowerInf := math.IsInf(lower, -1)
	upperInf := math.IsInf(upper, 1)
	if !lowerInf && !upperInf && !(lower < upper) {
		return partition.NewLeaf[Point](partition.TagOutside)
	}

	outside := func() *partition.Node[Point] { return partition.NewLeaf[Point](partition.TagOutside) }
	inside := func() *partition.Node[Point] { return partition.NewLeaf[Point](partition.TagInside) }

	if lowerInf && upperInf {
		return inside()
	}
	if lowerInf {
		upperCut := NewOrientedPoint(upper, true, tolerance).WholeHyperplane()
		return partition.NewNode(upperCut, inside(), outside())
	}
	lowerCut := NewOrientedPoint(lower, true, tolerance).WholeHyperplane()
	if upperInf {
		return partition.NewNode(lowerCut, outside(), inside())
	}
	upperCut := NewOrientedPoint(upper, true, tolerance).WholeHyperplane()
	return partition.NewNode(lowerCut, outside(), partition.NewNode(upperCut, inside(), outside()))
}

// Tolerance returns the tolerance the set's cuts were built with.
func (s *Set) Tolerance() float64 { return s.tolerance }

// Inf returns the lowest point of the set: -Inf when the set is unbounded
// below, +Inf when it is empty.
func (s *Set) Inf() float64 {
	list := s.AsList()
	if len(list) == 0 {
		return math.Inf(1)
	}
	return list[0].Lower
}

// Sup returns the highest point of the set: +Inf when the set is unbounded
// above, -Inf when it is empty.
func (s *Set) Sup() float64 {
	list := s.AsList()
	if len(list) == 0 {
		return math.Inf(-1)
	}
	return list[len(list)-1].Upper
}

// AsList returns the maximal intervals of the set in increasing order.
func (s *Set) AsList() []Interval {
	return appendIntervals(nil, s.Tree(), math.Inf(-1), math.Inf(1))
}

// appendIntervals walks the tree in increasing abscissa order. Two runs
// meeting at a cut with inside cells on both sides are merged.
func appendIntervals(list []Interval, n *partition.Node[Point], lower, upper float64) []Interval {
	if n.IsLeaf() {
		if n.Tag() == partition.TagInside {
			list = append(list, Interval{Lower: lower, Upper: upper})
		}
		return list
	}

	op := n.Cut().Hyperplane().(*OrientedPoint)
	x := op.Location()
	low, high := n.Minus(), n.Plus()
	if !op.IsDirect() {
		low, high = high, low
	}

	list = appendIntervals(list, low, lower, x)
	if low.Locate(Point(x)) == partition.Inside && high.Locate(Point(x)) == partition.Inside {
		x = list[len(list)-1].Lower
		list = list[:len(list)-1]
	}
	return appendIntervals(list, high, x, upper)
}

// Complement returns the points of the real line not in s.
func (s *Set) Complement() *Set {
	return FromTree(partition.Complement(s.Tree()), s.tolerance)
}

// Contains reports whether other is a subset of s.
func (s *Set) Contains(other *Set) bool {
	return Difference(other, s).IsEmpty()
}

func (s *Set) String() string {
	list := s.AsList()
	if len(list) == 0 {
		return "{}"
	}
	parts := make([]string, len(list))
	for i, in := range list {
		parts[i] = in.String()
	}
	return strings.Join(parts, " ∪ ")
}

// The combinators below keep the smaller of the two operand tolerances.

// Union returns a ∪ b.
func Union(a, b *Set) *Set { return combine(a, b, partition.OpUnion) }

// Intersection returns a ∩ b.
func Intersection(a, b *Set) *Set { return combine(a, b, partition.OpIntersection) }

// Difference returns a \ b.
func Difference(a, b *Set) *Set { return combine(a, b, partition.OpDifference) }

// Xor returns the points in exactly one of a and b.
func Xor(a, b *Set) *Set { return combine(a, b, partition.OpXor) }

func combine(a, b *Set, op partition.Operation) *Set {
	return FromTree(partition.Merge(a.Tree(), b.Tree(), op), min(a.tolerance, b.tolerance))
}
