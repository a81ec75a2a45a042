// Package classify names a black hole from its spin and charge and reports
// whether the combination admits a horizon.
//
// Unlike the constructors in the metric package, Classify never fails: a
// naked singularity (a*² + Q*² > 1) yields a record with IsPhysical false.
// Callers use it to describe inputs before, or instead of, building a model.
package classify
