// Package scheduler decides the order in which records are built and drives
// their construction through the dispatch registry.
//
// The build order is a topological order of the reference graph restricted
// to the records reachable from the synthetic root, so every record is built
// after the records it references. Ties between independent records break by
// BFS level (farthest from the root first) and then by id, which makes the
// order a function of ids and content only.
//
// Construction is still guarded by a retry stack: a constructor reading an id
// that is not built yet gets that id built first and is then retried. The
// stack detects cycles and the number of attempts per record is bounded.
//
// Before general scheduling the unit records are resolved (see ResolveUnits)
// so that every constructor sees the file's length factor and tolerance.
package scheduler
