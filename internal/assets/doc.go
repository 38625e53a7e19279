// Package assets implements the incremental asset-compilation pipeline:
// discovered source files are grouped into buckets by extension and
// directory, each bucket is routed to a writer, and each writer decides per
// file whether the destination is stale before copying, rendering, or
// shelling out to an external compiler.
//
// Staleness is transitive: a writer with an include pattern follows
// references between sibling sources (depth-bounded) and recompiles a master
// file when any of its includes changed. Failures of individual compiler
// invocations are isolated to the file; the rest of the bucket continues.
package assets
