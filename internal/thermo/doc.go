// Package thermo derives Hawking temperature, Bekenstein–Hawking entropy,
// luminosity, peak emission wavelength and evaporation lifetime from a
// black hole model.
//
// The temperature starts from the closed-form Schwarzschild approximation
// T ≈ 6.169e-8 K / (M/M_sun) and is rescaled for rotating variants by a
// surface-gravity ratio. Luminosity is a flat-space Stefan–Boltzmann
// estimate without greybody factors. A zero temperature (extremal holes)
// propagates as +Inf wavelength and lifetime.
package thermo
