// Package registry maps STEP entity type names to the Go constructors that
// build them.
//
// The Registry is filled once at startup by Module implementations (see the
// modules/ directory) and is read-only afterwards. A type name resolves in
// three steps:
//
//  1. Aliases map a name onto another one, e.g. FACE_SURFACE onto ADVANCED_FACE.
//  2. Routed names dispatch to a named special-case handler, e.g. ORIENTED_EDGE
//     to "oriented_edge". Handlers cover records whose meaning depends on
//     flags or on what their references resolved to.
//  3. Every other name dispatches to its plain constructor.
//
// Registering a name twice is a programmer error and panics. Validate checks
// that every route and alias lands on something registered.
package registry
