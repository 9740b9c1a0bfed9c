// Package planar realizes partition regions in the plane. Cuts are oriented
// lines whose extents are one-dimensional interval sets, and regions can be
// handed to sdfx as signed distance fields.
package planar

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/partition/pkg/matherr"
	"github.com/chazu/partition/pkg/partition"
)

// Set is a region of the plane.
type Set struct {
	*partition.Region[v2.Vec]
	tolerance float64
}

// FromTree wraps a tree whose cuts are sub-lines. The set takes ownership of
// tree.
func FromTree(tree *partition.Node[v2.Vec], tolerance float64) *Set {
	return &Set{
		Region:    partition.NewRegion[v2.Vec](tree, geometry{}),
		tolerance: tolerance,
	}
}

// Full returns the whole plane.
func Full(tolerance float64) *Set {
	return FromTree(partition.NewLeaf[v2.Vec](partition.TagInside), tolerance)
}

// Empty returns the empty set.
func Empty(tolerance float64) *Set {
	return FromTree(partition.NewLeaf[v2.Vec](partition.TagOutside), tolerance)
}

// NewHalfPlane returns the points on the left of the line through p1 and p2,
// directed from p1 to p2.
func NewHalfPlane(p1, p2 v2.Vec, tolerance float64) *Set {
	tree := partition.NewNode(NewLine(p1, p2, tolerance).WholeHyperplane(),
		partition.NewLeaf[v2.Vec](partition.TagInside),
		partition.NewLeaf[v2.Vec](partition.TagOutside))
	return FromTree(tree, tolerance)
}

// NewConvexPolygon returns the convex polygon with the given vertices, in
// either winding order. Collinear vertices are allowed.
func NewConvexPolygon(tolerance float64, vertices ...v2.Vec) (*Set, error) {
	n := len(vertices)
	if n < 3 {
		return nil, matherr.New(matherr.KindInvalidArgument, matherr.TooFewVertices, 3, n)
	}

	var area float64
	for i, p := range vertices {
		q := vertices[(i+1)%n]
		area += p.X*q.Y - q.X*p.Y
	}
	if area <= tolerance && area >= -tolerance {
		return nil, matherr.New(matherr.KindInvalidArgument, matherr.NotStrictlyPositive, math.Abs(area)/2).
			SetContext("vertices", n)
	}
	vs := vertices
	if area < 0 {
		vs = make([]v2.Vec, n)
		for i, p := range vertices {
			vs[n-1-i] = p
		}
	}

	for i := range vs {
		a, b, c := vs[(i+n-1)%n], vs[i], vs[(i+1)%n]
		turn := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if turn < -tolerance {
			return nil, matherr.New(matherr.KindInvalidArgument, matherr.NonConvexPolygon, i).
				SetContext("vertices", n)
		}
	}

	root := partition.NewLeaf[v2.Vec](partition.TagInside)
	node := root
	for i, p := range vs {
		line := NewLine(p, vs[(i+1)%n], tolerance)
		if node.InsertCut(line, partition.TagInside, partition.TagOutside) {
			node = node.Minus()
		}
	}
	return FromTree(root, tolerance), nil
}

// NewBox returns the axis-aligned rectangle b.
func NewBox(b sdf.Box2, tolerance float64) (*Set, error) {
	return NewConvexPolygon(tolerance,
		b.Min,
		v2.Vec{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		v2.Vec{X: b.Min.X, Y: b.Max.Y},
	)
}

func (s *Set) Tolerance() float64 { return s.tolerance }

// Complement returns the points of the plane not in s.
func (s *Set) Complement() *Set {
	return FromTree(partition.Complement(s.Tree()), s.tolerance)
}

// Contains reports whether other is a subset of s.
func (s *Set) Contains(other *Set) bool {
	return Difference(other, s).IsEmpty()
}

// Segments returns the bounded boundary segments of s, oriented so that the
// inside lies on their left. Unbounded boundary pieces are omitted.
func (s *Set) Segments() []Segment {
	return segments(s.Tree())
}

func segments(root *partition.Node[v2.Vec]) []Segment {
	var segs []Segment
	for _, f := range partition.Facets(root) {
		for _, sg := range f.Sub.(*SubLine).Segments() {
			if f.InsideOnPlus {
				sg.Start, sg.End = sg.End, sg.Start
			}
			segs = append(segs, sg)
		}
	}
	return segs
}

// Bounds returns the bounding box of s. ok is false when s is empty or
// unbounded.
func (s *Set) Bounds() (b sdf.Box2, ok bool) {
	if s.IsEmpty() || math.IsInf(s.Size(), 1) {
		return sdf.Box2{}, false
	}
	b.Min = v2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	b.Max = v2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, sg := range s.Segments() {
		for _, p := range []v2.Vec{sg.Start, sg.End} {
			b.Min.X = math.Min(b.Min.X, p.X)
			b.Min.Y = math.Min(b.Min.Y, p.Y)
			b.Max.X = math.Max(b.Max.X, p.X)
			b.Max.Y = math.Max(b.Max.Y, p.Y)
		}
	}
	return b, true
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
