// Package geom is the small geometric kernel the importer builds into.
//
// It exposes value objects for points, vectors, frames, curves, surfaces,
// edges, contours, faces and shells, plus the handful of operations an
// import needs: frame mapping, edge and contour reversal and curve trimming.
// Evaluation, intersection, meshing and export are out of its reach.
//
// Every FrameMapping method returns a new value; receivers are never
// modified.
package geom
