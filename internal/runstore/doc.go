// Package runstore writes a run to disk as a self-describing directory.
//
// Each run gets <base>/<run name>/ with three indented JSON documents:
// inputs.json, outputs.json and metadata.json. The layout is stable so runs
// can be archived, diffed and loaded back with Load.
package runstore
