package truss

import (
	"cmp"
	"slices"
)

// insertOrdered inserts items at the indices they carry and renumbers every
// entity it shifts. Items are applied in ascending index order so each
// shift composes with the previous ones.
func insertOrdered[T entity[T]](v []T, items []T) []T {
	if len(items) == 0 {
		return v
	}
	items = slices.Clone(items)
	slices.SortStableFunc(items, func(a, b T) int { return cmp.Compare(a.Index(), b.Index()) })

	n := len(v)
	v = slices.Grow(v, len(items))[:n+len(items)]
	src, dst := n-1, len(v)-1
	for k := len(items) - 1; k >= 0; k-- {
		for dst > items[k].Index() {
			v[src].SetIndex(dst)
			v[dst] = v[src]
			src--
			dst--
		}
		v[dst] = items[k]
		dst--
	}
	return v
}

// deleteOrdered removes items, located by identity, and renumbers the
// survivors. Each removed entity is left carrying the position it was
// removed from, so inserting the same items restores the original sequence.
func deleteOrdered[T entity[T]](v []T, items []T) []T {
	if len(items) == 0 {
		return v
	}
	doomed := make(map[T]struct{}, len(items))
	for _, it := range items {
		doomed[it] = struct{}{}
	}
	out := v[:0]
	for i, e := range v {
		if _, ok := doomed[e]; ok {
			e.SetIndex(i)
			continue
		}
		e.SetIndex(len(out))
		out = append(out, e)
	}
	clear(v[len(out):])
	return out
}

// exchangeOrdered swaps the contents of each item with the entity in the
// slot named by the item's index.
func exchangeOrdered[T entity[T]](v []T, items []T) {
	for _, it := range items {
		v[it.Index()].SwapContents(it)
	}
}
