package truss

import (
	"math/rand"
	"testing"

	"github.com/chazu/truss/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jointsAlongX(n int) []*Joint {
	out := make([]*Joint, n)
	for i := range out {
		out[i] = NewJoint(geom.Pt(float64(i), 0))
		out[i].SetIndex(i)
	}
	return out
}

func requireContiguous(t *testing.T, v []*Joint) {
	t.Helper()
	for i, j := range v {
		require.Equal(t, i, j.Index(), "joint at position %d", i)
	}
}

func TestInsertOrderedShiftsAndRenumbers(t *testing.T) {
	v := jointsAlongX(4)
	orig := append([]*Joint(nil), v...)

	a := NewJoint(geom.Pt(10, 0))
	a.SetIndex(1)
	b := NewJoint(geom.Pt(11, 0))
	b.SetIndex(4)

	// Deliberately out of order; insert sorts by target index.
	v = insertOrdered(v, []*Joint{b, a})
	require.Len(t, v, 6)
	requireContiguous(t, v)
	assert.Equal(t, []*Joint{orig[0], a, orig[1], orig[2], b, orig[3]}, v)
}

func TestInsertOrderedAppend(t *testing.T) {
	v := jointsAlongX(2)
	j := NewJoint(geom.Pt(5, 5))
	j.SetIndex(2)
	v = insertOrdered(v, []*Joint{j})
	requireContiguous(t, v)
	assert.Same(t, j, v[2])
}

func TestDeleteOrderedByIdentity(t *testing.T) {
	v := jointsAlongX(5)
	orig := append([]*Joint(nil), v...)

	// A stale index must not matter; deletion goes by identity.
	orig[3].SetIndex(0)
	v = deleteOrdered(v, []*Joint{orig[3], orig[1]})

	requireContiguous(t, v)
	assert.Equal(t, []*Joint{orig[0], orig[2], orig[4]}, v)
	assert.Equal(t, 1, orig[1].Index())
	assert.Equal(t, 3, orig[3].Index())
}

func TestDeleteThenInsertRestores(t *testing.T) {
	v := jointsAlongX(6)
	orig := append([]*Joint(nil), v...)

	gone := []*Joint{orig[0], orig[2], orig[5]}
	v = deleteOrdered(v, gone)
	v = insertOrdered(v, gone)

	requireContiguous(t, v)
	assert.Equal(t, orig, v)
}

func TestExchangeOrderedKeepsIdentity(t *testing.T) {
	v := jointsAlongX(3)
	slot := v[1]
	repl := NewJoint(geom.Pt(9, 9))
	repl.SetIndex(1)

	exchangeOrdered(v, []*Joint{repl})
	assert.Same(t, slot, v[1])
	assert.Equal(t, geom.Pt(9, 9), v[1].Point())
	assert.Equal(t, geom.Pt(1, 0), repl.Point())

	exchangeOrdered(v, []*Joint{repl})
	assert.Equal(t, geom.Pt(1, 0), v[1].Point())
}

func TestRandomInsertDeleteKeepsIndicesContiguous(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	v := jointsAlongX(3)
	for step := 0; step < 500; step++ {
		if len(v) > 0 && rng.Intn(2) == 0 {
			k := 1 + rng.Intn(min(3, len(v)))
			perm := rng.Perm(len(v))[:k]
			var items []*Joint
			for _, p := range perm {
				items = append(items, v[p])
			}
			v = deleteOrdered(v, items)
		} else {
			j := NewJoint(geom.Pt(float64(step), 1))
			j.SetIndex(rng.Intn(len(v) + 1))
			v = insertOrdered(v, []*Joint{j})
		}
		requireContiguous(t, v)
	}
}
