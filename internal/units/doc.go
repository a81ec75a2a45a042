// Package units holds the physical constants used by blackholecalc and the
// conversions between SI units and geometric units (G = c = 1).
//
// In geometric units mass, length and time share one unit, the meter:
//
//	M [m] = G * m [kg] / c^2
//	t [s] = t [m] / c
//
// Constants are plain values. Every component receives the table it needs
// explicitly instead of reading a package-level variable, so two evaluations
// with different tables can run side by side.
package units
