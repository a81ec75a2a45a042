// Package model defines the core data structures used throughout blackholecalc.
//
// This package contains the following main types:
//   - Run: One evaluation of a black hole with its inputs, outputs and provenance
//   - Quantities: An insertion-ordered set of named values with units
//   - Number: A float64 whose JSON form survives +Inf and NaN
//   - Notice: A warning raised while evaluating a run
//   - Sweep: A series of runs over one varied parameter
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (pipeline, report, runstore, database) need
// to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
