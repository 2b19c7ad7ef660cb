// Package objtable holds the objects built during one import run, keyed by
// record id.
//
// # Write-once discipline
//
// Every id is written at most once. A second Put for the same id fails with
// ErrAlreadyBuilt and leaves the first object in place. This is what lets the
// scheduler build independent components concurrently: two workers never
// write the same key, and readers only ever observe complete objects.
//
// # Missing dependencies
//
// Get on an id that has not been built returns a *MissingDependencyError.
// The scheduler treats it as a recoverable ordering fault: it builds the
// named id first and retries the caller.
//
// # Tagged results
//
// Objects carry an explicit Kind so consumers such as the shape
// representation handler can tell shells from frames without inspecting the
// dynamic type of Value.
package objtable
