package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnSegment(t *testing.T) {
	a, b := Pt(0, 0), Pt(8, 4)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"midpoint", Pt(4, 2), true},
		{"quarter", Pt(2, 1), true},
		{"endpoint a", Pt(0, 0), false},
		{"endpoint b", Pt(8, 4), false},
		{"beyond b", Pt(12, 6), false},
		{"before a", Pt(-4, -2), false},
		{"off line", Pt(4, 2.5), false},
		{"near a but distinct", Pt(0.25, 0.125), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnSegment(tt.p, a, b))
		})
	}
}

func TestOnSegmentVertical(t *testing.T) {
	a, b := Pt(4, -4), Pt(4, 4)
	assert.True(t, OnSegment(Pt(4, 0), a, b))
	assert.False(t, OnSegment(Pt(4.01, 0), a, b))
	assert.False(t, OnSegment(Pt(4, 5), a, b))
}

func TestCoincident(t *testing.T) {
	assert.True(t, Coincident(Pt(1, 1), Pt(1+Epsilon/2, 1)))
	assert.False(t, Coincident(Pt(1, 1), Pt(1+2*Epsilon, 1)))
}

func TestCrossOrientation(t *testing.T) {
	assert.Greater(t, Cross(Pt(0, 0), Pt(1, 0), Pt(1, 1)), 0.0)
	assert.Less(t, Cross(Pt(0, 0), Pt(1, 0), Pt(1, -1)), 0.0)
	assert.Equal(t, 0.0, Cross(Pt(0, 0), Pt(1, 0), Pt(2, 0)))
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Pt(0, 0), Pt(3, 4)), 1e-12)
	assert.InDelta(t, 25.0, DistanceSq(Pt(0, 0), Pt(3, 4)), 1e-12)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "(1.50, -2.25)", Format(Pt(1.5, -2.25)))
}
