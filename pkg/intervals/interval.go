package intervals

import (
	"fmt"
	"math"

	"github.com/chazu/partition/pkg/partition"
)

// Interval is a connected piece of a Set. Either bound may be infinite.
// Intervals are closed: both bounds are boundary points of the set.
type Interval struct {
	Lower float64
	Upper float64
}

// Size returns Upper - Lower.
func (i Interval) Size() float64 {
	return i.Upper - i.Lower
}

// Barycenter returns the midpoint of the interval.
func (i Interval) Barycenter() float64 {
	return 0.5 * (i.Lower + i.Upper)
}

// CheckPoint locates x with respect to the closed interval.
func (i Interval) CheckPoint(x, tolerance float64) partition.Location {
	switch {
	case x < i.Lower-tolerance || x > i.Upper+tolerance:
		return partition.Outside
	case x > i.Lower+tolerance && x < i.Upper-tolerance:
		return partition.Inside
	default:
		return partition.Boundary
	}
}

// String prints the closed form [Lower, Upper].
func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", formatBound(i.Lower), formatBound(i.Upper))
}

func formatBound(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "+inf"
	case math.IsInf(x, -1):
		return "-inf"
	default:
		return fmt.Sprintf("%g", x)
	}
}
