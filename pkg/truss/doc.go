// Package truss holds the topological model of a truss: ordered joints and
// members, the primitive ordered-collection operations edit commands are
// built from, and read-only queries and validation over the model.
//
// Entities are referenced by pointer. An entity's index always equals its
// position in the model's slice; the insert and delete primitives keep that
// true by renumbering every entity they shift.
package truss
