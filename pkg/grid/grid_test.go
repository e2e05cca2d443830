package grid

import (
	"testing"

	"github.com/chazu/truss/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDensities(t *testing.T) {
	g := New(Coarse)
	assert.Equal(t, 4, g.SnapMultiple())
	assert.Equal(t, 1.0, g.Size())
	assert.Equal(t, Coarse, g.Density())
	assert.True(t, g.IsFiner(Medium))
	assert.False(t, g.IsFiner(Coarse))

	g.SetDensity(Fine)
	assert.Equal(t, 0.25, g.Size())
	assert.False(t, g.IsFiner(Medium))
	assert.Equal(t, Density(-1), ToDensity(3))
}

func TestParseDensity(t *testing.T) {
	for _, d := range []Density{Coarse, Medium, Fine} {
		got, err := ParseDensity(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := ParseDensity("extra-fine")
	assert.Error(t, err)
}

func TestWorldToGrid(t *testing.T) {
	tests := []struct {
		d    Density
		x    float64
		want int
	}{
		{Coarse, 2.6, 12},
		{Coarse, 2.4, 8},
		{Medium, 2.6, 10},
		{Fine, 2.6, 10},
		{Fine, 2.65, 11},
		{Fine, -0.125, 0},
		{Fine, 0.125, 1},
		{Coarse, -2.6, -12},
	}
	for _, tt := range tests {
		g := New(tt.d)
		assert.Equal(t, tt.want, g.WorldToGridX(tt.x), "%s %v", tt.d, tt.x)
	}

	g := New(Medium)
	assert.Equal(t, geom.Pt(1.5, -0.5), g.Snap(geom.Pt(1.6, -0.6)))
	assert.Equal(t, Point{X: 6, Y: -2}, g.WorldToGrid(geom.Pt(1.6, -0.6)))
}

func TestSnapMultipleOf(t *testing.T) {
	tests := []struct {
		c    float64
		want int
	}{
		{0, 4}, {0.25, 1}, {0.5, 2}, {0.75, 1}, {1, 4}, {2, 4}, {3.5, 2}, {-0.5, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnapMultipleOf(tt.c), "c=%v", tt.c)
	}
	assert.Equal(t, 2, MinSnapMultiple([]geom.Point{geom.Pt(1, 2), geom.Pt(0.5, 4)}))
	assert.Equal(t, MaxSnapMultiple, MinSnapMultiple(nil))
}

func TestGraduationLevel(t *testing.T) {
	tests := map[int]int{0: 2, 1: 0, 2: 1, 3: 0, 4: 2, 6: 1, 8: 2, -2: 1}
	for c, want := range tests {
		assert.Equal(t, want, GraduationLevel(c), "c=%d", c)
	}
}
