// Package geom provides the point, vector and frame algebra consumed by the
// curve and edge layers: 2D and 3D points and vectors with the usual products
// and norms, and placement frames (an origin plus an orthonormal basis) with
// global/local coordinate conversion.
//
// All types are immutable values. Operations return new values and never
// mutate their receiver.
package geom
