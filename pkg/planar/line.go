package planar

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/partition/pkg/intervals"
	"github.com/chazu/partition/pkg/partition"
)

// Line is an oriented line of the plane. Points on its left have a negative
// offset, points on its right a positive one. Positions along the line are
// abscissas measured in the direction (cos, sin).
type Line struct {
	angle        float64
	cos, sin     float64
	originOffset float64
	tolerance    float64
}

var _ partition.Hyperplane[v2.Vec] = (*Line)(nil)

// NewLine returns the line through p1 and p2, directed from p1 to p2.
func NewLine(p1, p2 v2.Vec, tolerance float64) *Line {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return &Line{cos: 1, originOffset: p1.Y, tolerance: tolerance}
	}
	return &Line{
		angle:        math.Pi + math.Atan2(-dy, -dx),
		cos:          dx / d,
		sin:          dy / d,
		originOffset: (p2.X*p1.Y - p1.X*p2.Y) / d,
		tolerance:    tolerance,
	}
}

// NewLineAngle returns the line through p with direction angle.
func NewLineAngle(p v2.Vec, angle, tolerance float64) *Line {
	sin, cos := math.Sincos(angle)
	return &Line{
		angle:        angle,
		cos:          cos,
		sin:          sin,
		originOffset: cos*p.Y - sin*p.X,
		tolerance:    tolerance,
	}
}

// Angle returns the direction of the line in radians.
func (l *Line) Angle() float64 { return l.angle }

func (l *Line) Tolerance() float64 { return l.tolerance }

func (l *Line) Offset(p v2.Vec) float64 {
	return l.sin*p.X - l.cos*p.Y + l.originOffset
}

// Abscissa returns the position along the line of the projection of p.
func (l *Line) Abscissa(p v2.Vec) float64 {
	return l.cos*p.X + l.sin*p.Y
}

// PointAt returns the point of the line at the given abscissa.
func (l *Line) PointAt(abscissa float64) v2.Vec {
	return v2.Vec{
		X: abscissa*l.cos - l.originOffset*l.sin,
		Y: abscissa*l.sin + l.originOffset*l.cos,
	}
}

// Intersection returns the crossing point of two lines. ok is false for
// parallel lines.
func (l *Line) Intersection(other *Line) (p v2.Vec, ok bool) {
	d := l.sin*other.cos - other.sin*l.cos
	if math.Abs(d) < 1e-10 {
		return v2.Vec{}, false
	}
	return v2.Vec{
		X: (l.cos*other.originOffset - other.cos*l.originOffset) / d,
		Y: (l.sin*other.originOffset - other.sin*l.originOffset) / d,
	}, true
}

func (l *Line) WholeHyperplane() partition.SubHyperplane[v2.Vec] {
	return &SubLine{line: l, remaining: intervals.Full(l.tolerance)}
}

func (l *Line) SameOrientationAs(other partition.Hyperplane[v2.Vec]) bool {
	o := other.(*Line)
	return l.sin*o.sin+l.cos*o.cos >= 0
}

func (l *Line) Reverse() partition.Hyperplane[v2.Vec] {
	angle := l.angle + math.Pi
	if angle >= 2*math.Pi {
		angle -= 2 * math.Pi
	}
	return &Line{
		angle:        angle,
		cos:          -l.cos,
		sin:          -l.sin,
		originOffset: -l.originOffset,
		tolerance:    l.tolerance,
	}
}

func (l *Line) Copy() partition.Hyperplane[v2.Vec] {
	c := *l
	return &c
}
