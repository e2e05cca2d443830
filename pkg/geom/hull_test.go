package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHullSquareWithInteriorAndCollinear(t *testing.T) {
	var h HullBuilder
	h.AddXY(0, 0)
	h.AddXY(1, 0)
	h.AddXY(1, 1)
	h.AddXY(0, 1)
	h.AddXY(0.5, 0.5) // interior
	h.AddXY(0.5, 0)   // on the bottom edge

	got := h.Hull(nil)
	want := []Point{Pt(1, 1), Pt(0, 1), Pt(0, 0), Pt(1, 0)}
	assert.Equal(t, want, got)
}

func TestHullIsCounterClockwise(t *testing.T) {
	var h HullBuilder
	for _, p := range []Point{
		Pt(3, 1), Pt(-2, 4), Pt(0, -3), Pt(1, 1), Pt(5, 5), Pt(-4, -1), Pt(2, 0),
	} {
		h.Add(p)
	}
	hull := h.Hull(nil)
	require.GreaterOrEqual(t, len(hull), 3)
	for i := range hull {
		o := hull[i]
		a := hull[(i+1)%len(hull)]
		b := hull[(i+2)%len(hull)]
		assert.Greater(t, Cross(o, a, b), 0.0, "turn at vertex %d", i)
	}
	assert.NotContains(t, hull, Pt(1, 1))
	assert.NotContains(t, hull, Pt(2, 0))
}

func TestHullDegenerateReturnsInput(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
	}{
		{"empty", nil},
		{"one", []Point{Pt(2, 3)}},
		{"two", []Point{Pt(5, 5), Pt(-1, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h HullBuilder
			for _, p := range tt.pts {
				h.Add(p)
			}
			got := h.Hull(nil)
			assert.Len(t, got, len(tt.pts))
			for i, p := range tt.pts {
				assert.Equal(t, p, got[i])
			}
		})
	}
}

func TestHullReusesBuffer(t *testing.T) {
	var h HullBuilder
	h.AddXY(0, 0)
	h.AddXY(4, 0)
	h.AddXY(0, 4)

	buf := make([]Point, 0, 8)
	got := h.Hull(buf)
	require.Len(t, got, 3)
	assert.Same(t, &buf[:1][0], &got[0])

	small := make([]Point, 0, 1)
	got = h.Hull(small)
	require.Len(t, got, 3)
	assert.Equal(t, 1, cap(small))
}

func TestHullClearReuse(t *testing.T) {
	var h HullBuilder
	h.AddXY(0, 0)
	h.AddXY(1, 0)
	h.AddXY(0, 1)
	require.Len(t, h.Hull(nil), 3)

	h.Clear()
	assert.Equal(t, 0, h.Len())
	h.AddXY(7, 7)
	assert.Equal(t, []Point{Pt(7, 7)}, h.Hull(nil))
}
