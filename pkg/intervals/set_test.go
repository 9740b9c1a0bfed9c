package intervals

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/partition/pkg/matherr"
	"github.com/chazu/partition/pkg/partition"
)

const eps = 1e-10

func TestInterval(t *testing.T) {
	set := New(2.3, 5.7)

	assert.InDelta(t, 3.4, set.Size(), eps)
	bary, err := set.Barycenter()
	require.NoError(t, err)
	assert.InDelta(t, 4.0, float64(bary), eps)

	tests := []struct {
		x    float64
		want partition.Location
	}{
		{2.3, partition.Boundary},
		{5.7, partition.Boundary},
		{1.2, partition.Outside},
		{8.7, partition.Outside},
		{3.0, partition.Inside},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, set.CheckPoint(Point(tt.x)), "CheckPoint(%v)", tt.x)
	}

	assert.InDelta(t, 2.3, set.Inf(), eps)
	assert.InDelta(t, 5.7, set.Sup(), eps)
}

func TestInfinite(t *testing.T) {
	set := New(9.0, math.Inf(1))

	assert.True(t, math.IsInf(set.Size(), 1))
	assert.InDelta(t, 9.0, set.Inf(), eps)
	assert.True(t, math.IsInf(set.Sup(), 1))
	assert.Equal(t, partition.Boundary, set.CheckPoint(9.0))
	assert.Equal(t, partition.Inside, set.CheckPoint(1e300))

	comp := set.Complement()
	assert.InDelta(t, 9.0, comp.Sup(), eps)
	assert.True(t, math.IsInf(comp.Inf(), -1))
	assert.Equal(t, partition.Inside, comp.CheckPoint(-1e300))
	assert.Equal(t, partition.Outside, comp.CheckPoint(10))

	_, err := set.Barycenter()
	assert.ErrorIs(t, err, matherr.ErrUndefinedMetric)
}

func TestMultiple(t *testing.T) {
	set := Intersection(
		Union(Difference(New(1.0, 6.0), New(3.0, 5.0)), New(9.0, math.Inf(1))),
		New(math.Inf(-1), 11.0),
	)

	assert.InDelta(t, 5.0, set.Size(), eps)
	bary, err := set.Barycenter()
	require.NoError(t, err)
	assert.InDelta(t, 5.9, float64(bary), eps)

	tests := []struct {
		x    float64
		want partition.Location
	}{
		{0.0, partition.Outside},
		{4.0, partition.Outside},
		{8.0, partition.Outside},
		{12.0, partition.Outside},
		{1.2, partition.Inside},
		{5.9, partition.Inside},
		{9.01, partition.Inside},
		{5.0, partition.Boundary},
		{11.0, partition.Boundary},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, set.CheckPoint(Point(tt.x)), "CheckPoint(%v)", tt.x)
	}

	assert.InDelta(t, 1.0, set.Inf(), eps)
	assert.InDelta(t, 11.0, set.Sup(), eps)

	want := []Interval{{1, 3}, {5, 6}, {9, 11}}
	if diff := cmp.Diff(want, set.AsList(), cmpopts.EquateApprox(0, eps)); diff != "" {
		t.Errorf("AsList() mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	original := Xor(
		Union(New(-4, -1), New(0.5, 2)),
		Union(New(1, 3), New(7, math.Inf(1))),
	)
	rebuilt := FromIntervals(DefaultTolerance, original.AsList()...)

	for x := -6.0; x <= 12.0; x += 0.25 {
		assert.Equal(t, original.CheckPoint(Point(x)), rebuilt.CheckPoint(Point(x)), "CheckPoint(%v)", x)
	}
	if diff := cmp.Diff(original.AsList(), rebuilt.AsList(), cmpopts.EquateApprox(0, eps)); diff != "" {
		t.Errorf("AsList() mismatch (-original +rebuilt):\n%s", diff)
	}
}

func TestAdjacentIntervalsMerge(t *testing.T) {
	set := Union(New(0, 1), New(1, 2))

	if diff := cmp.Diff([]Interval{{0, 2}}, set.AsList(), cmpopts.EquateApprox(0, eps)); diff != "" {
		t.Errorf("AsList() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, partition.Inside, set.CheckPoint(1))
	assert.InDelta(t, 2.0, set.Size(), eps)
}

func TestConstruction(t *testing.T) {
	tests := []struct {
		name         string
		lower, upper float64
		empty, full  bool
		size         float64
	}{
		{"bounded", 0, 2, false, false, 2},
		{"reversed", 3, 1, true, false, 0},
		{"degenerate", 1, 1, true, false, 0},
		{"lower unbounded", math.Inf(-1), 0, false, false, math.Inf(1)},
		{"upper unbounded", 0, math.Inf(1), false, false, math.Inf(1)},
		{"whole line", math.Inf(-1), math.Inf(1), false, true, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := New(tt.lower, tt.upper)
			assert.Equal(t, tt.empty, set.IsEmpty(), "IsEmpty()")
			assert.Equal(t, tt.full, set.IsFull(), "IsFull()")
			assert.Equal(t, tt.size, set.Size(), "Size()")
		})
	}
}

func TestEmptyBounds(t *testing.T) {
	set := Empty(DefaultTolerance)

	assert.True(t, math.IsInf(set.Inf(), 1))
	assert.True(t, math.IsInf(set.Sup(), -1))
	assert.Empty(t, set.AsList())
	assert.Equal(t, "{}", set.String())

	_, err := set.Barycenter()
	assert.ErrorIs(t, err, matherr.ErrUndefinedMetric)
}

func TestAlgebraLaws(t *testing.T) {
	a := Union(New(0, 4), New(6, 8))
	b := New(2, 7)
	probes := []float64{-1, 0.5, 1, 2.5, 3, 5, 6.5, 7.5, 9}

	sameOn := func(t *testing.T, want, got *Set) {
		t.Helper()
		for _, x := range probes {
			assert.Equal(t, want.CheckPoint(Point(x)), got.CheckPoint(Point(x)), "CheckPoint(%v)", x)
		}
	}

	t.Run("double complement", func(t *testing.T) {
		sameOn(t, a, a.Complement().Complement())
	})
	t.Run("de morgan", func(t *testing.T) {
		sameOn(t, Union(a, b).Complement(), Intersection(a.Complement(), b.Complement()))
	})
	t.Run("xor", func(t *testing.T) {
		sameOn(t, Xor(a, b), Union(Difference(a, b), Difference(b, a)))
	})
	t.Run("operands untouched", func(t *testing.T) {
		before := a.Tree().Count()
		_ = Union(a, b)
		_ = Difference(a, b)
		assert.Equal(t, before, a.Tree().Count())
		assert.InDelta(t, 6.0, a.Size(), eps)
	})
	t.Run("contains", func(t *testing.T) {
		assert.True(t, a.Contains(New(0.5, 3.5)))
		assert.False(t, a.Contains(b))
		assert.True(t, Union(a, b).Contains(b))
	})
	t.Run("sizes", func(t *testing.T) {
		assert.InDelta(t, 8.0, Union(a, b).Size(), eps)
		assert.InDelta(t, 3.0, Intersection(a, b).Size(), eps)
		assert.InDelta(t, 3.0, Difference(a, b).Size(), eps)
		assert.InDelta(t, 5.0, Xor(a, b).Size(), eps)
	})
}

func TestBoundary(t *testing.T) {
	set := Union(New(0, 1), New(2, 3))

	facets := set.Boundary()
	require.Len(t, facets, 4)
	assert.Zero(t, set.BoundarySize())

	var locations []float64
	for _, f := range facets {
		locations = append(locations, f.Sub.Hyperplane().(*OrientedPoint).Location())
	}
	assert.ElementsMatch(t, []float64{0, 1, 2, 3}, locations)
}

func TestString(t *testing.T) {
	set := Union(New(math.Inf(-1), 1), New(2, 3))
	assert.Equal(t, "[-inf, 1] ∪ [2, 3]", set.String())
}

func TestIntervalCheckPoint(t *testing.T) {
	in := Interval{Lower: 1, Upper: 2}
	assert.Equal(t, partition.Outside, in.CheckPoint(0.5, eps))
	assert.Equal(t, partition.Boundary, in.CheckPoint(1, eps))
	assert.Equal(t, partition.Inside, in.CheckPoint(1.5, eps))
	assert.InDelta(t, 1.5, in.Barycenter(), eps)
}

func TestConcurrentQueries(t *testing.T) {
	set := Intersection(
		Union(Difference(New(1, 6), New(3, 5)), New(9, math.Inf(1))),
		New(math.Inf(-1), 11))
	want := []Interval{{1, 3}, {5, 6}, {9, 11}}

	const workers = 16
	var wg sync.WaitGroup
	sizes := make([]float64, workers)
	barys := make([]float64, workers)
	lists := make([][]Interval, workers)
	locs := make([]partition.Location, workers)
	unions := make([]float64, workers)
	comps := make([]bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sizes[i] = set.Size()
			if b, err := set.Barycenter(); err == nil {
				barys[i] = float64(b)
			}
			lists[i] = set.AsList()
			locs[i] = set.CheckPoint(2)
			unions[i] = Union(set, New(3, 5)).Size()
			comps[i] = set.Complement().CheckPoint(4) == partition.Inside
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		assert.InDelta(t, 5.0, sizes[i], eps)
		assert.InDelta(t, 5.9, barys[i], eps)
		assert.Empty(t, cmp.Diff(want, lists[i], cmpopts.EquateApprox(0, eps)))
		assert.Equal(t, partition.Inside, locs[i])
		assert.InDelta(t, 7.0, unions[i], eps)
		assert.True(t, comps[i])
	}

	// the shared operand is unchanged
	assert.InDelta(t, 5.0, set.Size(), eps)
	assert.Empty(t, cmp.Diff(want, set.AsList(), cmpopts.EquateApprox(0, eps)))
}

func TestMixedTolerance(t *testing.T) {
	coarse := NewWithTolerance(0, 1, 0.1)
	fine := NewWithTolerance(2, 3, 1e-6)

	for _, s := range []*Set{Union(coarse, fine), Union(fine, coarse), Difference(coarse, fine), Xor(fine, coarse)} {
		assert.Equal(t, 1e-6, s.Tolerance())
	}
	assert.Equal(t, 0.1, Intersection(coarse, NewWithTolerance(0.5, 2, 0.2)).Tolerance())
}
