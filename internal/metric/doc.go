// Package metric models the four stationary black hole spacetimes of
// general relativity as a closed set of variants behind one interface.
//
//   - [Schwarzschild]: static, neutral
//   - [Kerr]: rotating, neutral
//   - [ReissnerNordstrom]: static, charged
//   - [KerrNewman]: rotating, charged
//
// Every variant is built from a mass in solar masses plus, where it applies,
// a dimensionless spin a* and charge Q*. Construction validates the inputs
// once; a constructed value is immutable and safe for concurrent reads.
//
// # Units
//
// Radii, horizons and the geometric mass M = G*m/c^2 are in meters. The
// spin and charge lengths are a = a*·M and Q = Q*·M.
//
// # Errors and sentinels
//
// Invalid inputs (non-positive mass, |a*| > 1, a*^2 + Q*^2 > 1) fail with an
// error wrapping [ErrInvalidParameter]. Operations a variant deliberately
// does not model fail with [ErrNotImplemented]. A redshift that diverges at
// or inside the static limit is returned as +Inf, not as an error.
package metric
