// Package geom provides the planar geometry used by the truss editor:
// points, segment containment tests and an incremental convex hull builder.
// Points are sdfx 2D vectors so the rest of the stack can hand them to sdf
// boxes without conversion.
package geom
