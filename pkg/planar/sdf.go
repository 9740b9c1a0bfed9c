package planar

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/partition/pkg/matherr"
	"github.com/chazu/partition/pkg/partition"
)

// distanceField evaluates the signed distance to the boundary of a bounded
// set: negative inside, positive outside.
type distanceField struct {
	set      *Set
	segments []Segment
	bb       sdf.Box2
}

var _ sdf.SDF2 = (*distanceField)(nil)

// SDF2 returns s as an sdfx signed distance field, so planar regions can be
// combined with sdfx shapes. It fails for empty or unbounded sets.
func (s *Set) SDF2() (sdf.SDF2, error) {
	bb, ok := s.Bounds()
	if !ok {
		return nil, matherr.New(matherr.KindUndefinedMetric, matherr.NoDistanceField, s.Size())
	}
	return &distanceField{set: s, segments: s.Segments(), bb: bb}, nil
}

func (d *distanceField) Evaluate(p v2.Vec) float64 {
	dist := math.Inf(1)
	for _, sg := range d.segments {
		dist = math.Min(dist, sg.Distance(p))
	}
	if d.set.CheckPoint(p) == partition.Inside {
		return -dist
	}
	return dist
}

func (d *distanceField) BoundingBox() sdf.Box2 {
	return d.bb
}
