package partition

import (
	"math"
	"sync"

	"github.com/chazu/partition/pkg/matherr"
	"gonum.org/v1/gonum/floats/scalar"
)

// Location is the position of a point relative to a region.
type Location int

const (
	Outside Location = iota
	Inside
	Boundary
)

func (l Location) String() string {
	switch l {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case Boundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Geometry is implemented once per embedding space. It supplies what the
// generic engine cannot compute on its own.
type Geometry[P Point] interface {
	// Dimension identifies the embedding space. Regions can only be
	// combined with regions of the same dimension.
	Dimension() int
	// Properties returns the measure of the inside part of the tree and its
	// barycenter. The barycenter is ignored when the size is zero or
	// infinite.
	Properties(root *Node[P]) (size float64, barycenter P)
}

// Region is a set of points represented by a BSP tree. A Region is never
// modified after construction; every operation returns a new Region, so
// a Region may be shared between goroutines.
type Region[P Point] struct {
	tree     *Node[P]
	geometry Geometry[P]

	once       sync.Once
	size       float64
	barycenter P
}

// NewRegion wraps tree. The region takes ownership of tree.
func NewRegion[P Point](tree *Node[P], geometry Geometry[P]) *Region[P] {
	return &Region[P]{tree: tree, geometry: geometry}
}

// Tree returns the region's tree. It is shared and must not be modified.
func (r *Region[P]) Tree() *Node[P] { return r.tree }

func (r *Region[P]) Geometry() Geometry[P] { return r.geometry }

// CheckPoint returns the location of p with respect to the region.
func (r *Region[P]) CheckPoint(p P) Location {
	return r.tree.Locate(p)
}

// IsEmpty reports whether the region has no inside cell.
func (r *Region[P]) IsEmpty() bool {
	return !hasTag(r.tree, TagInside)
}

// IsFull reports whether the region has no outside cell.
func (r *Region[P]) IsFull() bool {
	return !hasTag(r.tree, TagOutside)
}

func hasTag[P Point](n *Node[P], tag Tag) bool {
	if n.cut == nil {
		return n.tag == tag
	}
	return hasTag(n.minus, tag) || hasTag(n.plus, tag)
}

func (r *Region[P]) properties() {
	r.once.Do(func() {
		r.size, r.barycenter = r.geometry.Properties(r.tree)
	})
}

// Size returns the measure of the region: 0 when empty, +Inf when some
// inside cell is unbounded.
func (r *Region[P]) Size() float64 {
	r.properties()
	return r.size
}

// Barycenter returns the measure-weighted centroid of the region. It fails
// with a matherr.KindUndefinedMetric error when the size is zero or infinite.
func (r *Region[P]) Barycenter() (P, error) {
	r.properties()
	if r.size == 0 || math.IsInf(r.size, 0) || math.IsNaN(r.size) {
		var zero P
		return zero, matherr.New(matherr.KindUndefinedMetric, matherr.UndefinedBarycenter, r.size).
			SetContext("size", r.size)
	}
	return r.barycenter, nil
}

// Boundary returns the facets separating inside cells from outside cells,
// in tree pre-order.
func (r *Region[P]) Boundary() []Facet[P] {
	return Facets(r.tree)
}

// BoundarySize returns the total measure of the boundary facets.
func (r *Region[P]) BoundarySize() float64 {
	var size float64
	for _, f := range r.Boundary() {
		size += f.Sub.Size()
	}
	return size
}

// Complement returns the region containing every point outside r.
func (r *Region[P]) Complement() *Region[P] {
	return NewRegion(Complement(r.tree), r.geometry)
}

// Contains reports whether other is a subset of r.
func (r *Region[P]) Contains(other *Region[P]) (bool, error) {
	diff, err := Difference(other, r)
	if err != nil {
		return false, err
	}
	return diff.IsEmpty(), nil
}

// Union returns a ∪ b.
func Union[P Point](a, b *Region[P]) (*Region[P], error) {
	return combine(a, b, OpUnion)
}

// Intersection returns a ∩ b.
func Intersection[P Point](a, b *Region[P]) (*Region[P], error) {
	return combine(a, b, OpIntersection)
}

// Difference returns a \ b.
func Difference[P Point](a, b *Region[P]) (*Region[P], error) {
	return combine(a, b, OpDifference)
}

// Xor returns the symmetric difference of a and b.
func Xor[P Point](a, b *Region[P]) (*Region[P], error) {
	return combine(a, b, OpXor)
}

func combine[P Point](a, b *Region[P], op Operation) (*Region[P], error) {
	da, db := a.geometry.Dimension(), b.geometry.Dimension()
	if da != db {
		return nil, matherr.New(matherr.KindDimensionMismatch, matherr.DimensionMismatch, da, db).
			SetContext("operation", op.String())
	}
	return NewRegion(Merge(a.tree, b.tree, op), a.geometry), nil
}

func onHyperplane(offset, tolerance float64) bool {
	return scalar.EqualWithinAbs(offset, 0, tolerance)
}
