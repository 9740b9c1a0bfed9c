package planar

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/partition/pkg/intervals"
	"github.com/chazu/partition/pkg/partition"
)

// SubLine is the part of a line covered by a set of abscissas.
type SubLine struct {
	line      *Line
	remaining *intervals.Set
}

var _ partition.SubHyperplane[v2.Vec] = (*SubLine)(nil)

// NewSegment returns the sub-line from start to end.
func NewSegment(start, end v2.Vec, tolerance float64) *SubLine {
	line := NewLine(start, end, tolerance)
	return &SubLine{
		line:      line,
		remaining: intervals.NewWithTolerance(line.Abscissa(start), line.Abscissa(end), tolerance),
	}
}

func (s *SubLine) Hyperplane() partition.Hyperplane[v2.Vec] { return s.line }

// Line returns the supporting line.
func (s *SubLine) Line() *Line { return s.line }

// Remaining returns the abscissas covered by s.
func (s *SubLine) Remaining() *intervals.Set { return s.remaining }

func (s *SubLine) Split(h partition.Hyperplane[v2.Vec]) (minus, plus partition.SubHyperplane[v2.Vec]) {
	other := h.(*Line)
	tol := s.line.tolerance

	crossing, ok := s.line.Intersection(other)
	if !ok {
		offset := other.Offset(s.line.PointAt(0))
		switch {
		case offset < -tol:
			return s, nil
		case offset > tol:
			return nil, s
		default:
			return nil, nil
		}
	}

	x := s.line.Abscissa(crossing)
	above := intervals.NewWithTolerance(x, math.Inf(1), tol)
	below := intervals.NewWithTolerance(math.Inf(-1), x, tol)
	// the offset to other decreases along s.line
	if other.sin*s.line.cos-other.cos*s.line.sin < 0 {
		above, below = below, above
	}
	return s.part(intervals.Intersection(s.remaining, below)), s.part(intervals.Intersection(s.remaining, above))
}

func (s *SubLine) part(remaining *intervals.Set) partition.SubHyperplane[v2.Vec] {
	if remaining.IsEmpty() {
		return nil
	}
	return &SubLine{line: s.line, remaining: remaining}
}

func (s *SubLine) Side(h partition.Hyperplane[v2.Vec]) partition.Side {
	minus, plus := s.Split(h)
	switch {
	case minus == nil && plus == nil:
		return partition.SideHyper
	case minus == nil:
		return partition.SidePlus
	case plus == nil:
		return partition.SideMinus
	default:
		return partition.SideBoth
	}
}

// Size returns the length of the sub-line, +Inf when unbounded.
func (s *SubLine) Size() float64 { return s.remaining.Size() }

func (s *SubLine) IsEmpty() bool { return s.remaining.IsEmpty() }

func (s *SubLine) Copy() partition.SubHyperplane[v2.Vec] {
	return &SubLine{line: s.line.Copy().(*Line), remaining: s.remaining}
}

func (s *SubLine) Reunite(other partition.SubHyperplane[v2.Vec]) partition.SubHyperplane[v2.Vec] {
	return &SubLine{line: s.line, remaining: intervals.Union(s.remaining, other.(*SubLine).remaining)}
}

// Segments returns the bounded pieces of s in increasing abscissa order.
// Unbounded pieces are omitted.
func (s *SubLine) Segments() []Segment {
	var segs []Segment
	for _, in := range s.remaining.AsList() {
		if math.IsInf(in.Lower, 0) || math.IsInf(in.Upper, 0) {
			continue
		}
		segs = append(segs, Segment{Start: s.line.PointAt(in.Lower), End: s.line.PointAt(in.Upper)})
	}
	return segs
}

// Segment is a directed line segment.
type Segment struct {
	Start, End v2.Vec
}

// Length returns the distance between the endpoints.
func (sg Segment) Length() float64 {
	return math.Hypot(sg.End.X-sg.Start.X, sg.End.Y-sg.Start.Y)
}

// Distance returns the distance from p to the closest point of sg.
func (sg Segment) Distance(p v2.Vec) float64 {
	dx, dy := sg.End.X-sg.Start.X, sg.End.Y-sg.Start.Y
	l2 := dx*dx + dy*dy
	t := 0.0
	if l2 > 0 {
		t = ((p.X-sg.Start.X)*dx + (p.Y-sg.Start.Y)*dy) / l2
		t = math.Max(0, math.Min(1, t))
	}
	return math.Hypot(p.X-sg.Start.X-t*dx, p.Y-sg.Start.Y-t*dy)
}
