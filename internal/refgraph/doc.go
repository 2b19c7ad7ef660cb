// Package refgraph builds the reference graph of an import run: which
// records reference which, after relationship shortcuts are applied and
// records the registry cannot build are pruned.
//
// The graph keeps a directed adjacency (referencer -> referenced) used for
// ordering and for finding shells under assembly relationships, and treats the
// same edges as undirected for reachability and leveling from the synthetic
// root. The root (id 0) is connected to the top-level records: plain shells,
// breps with voids and frame-mapping relationships.
package refgraph
