package planar

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/partition/pkg/partition"
)

type geometry struct{}

func (geometry) Dimension() int { return 2 }

// Properties integrates over the boundary with Green's theorem. Facets are
// walked with the inside on their left, so a bounded region has a positive
// signed area and the complement of one a negative area.
func (geometry) Properties(root *partition.Node[v2.Vec]) (float64, v2.Vec) {
	nan := v2.Vec{X: math.NaN(), Y: math.NaN()}
	facets := partition.Facets(root)
	if len(facets) == 0 {
		if root.Classify(v2.Vec{}) == partition.TagInside {
			return math.Inf(1), nan
		}
		return 0, nan
	}

	var sum, sumX, sumY float64
	for _, f := range facets {
		sub := f.Sub.(*SubLine)
		for _, in := range sub.remaining.AsList() {
			if math.IsInf(in.Lower, 0) || math.IsInf(in.Upper, 0) {
				return math.Inf(1), nan
			}
			p0, p1 := sub.line.PointAt(in.Lower), sub.line.PointAt(in.Upper)
			if f.InsideOnPlus {
				p0, p1 = p1, p0
			}
			factor := p0.X*p1.Y - p0.Y*p1.X
			sum += factor
			sumX += factor * (p0.X + p1.X)
			sumY += factor * (p0.Y + p1.Y)
		}
	}
	if sum < 0 {
		return math.Inf(1), nan
	}
	if sum == 0 {
		return 0, nan
	}
	return sum / 2, v2.Vec{X: sumX / (3 * sum), Y: sumY / (3 * sum)}
}
