// Package main provides the entry point for the blackholecalc CLI.
//
// blackholecalc evaluates closed-form properties of Schwarzschild, Kerr,
// Reissner-Nordström and Kerr-Newman black holes: horizons, orbits,
// redshift, Hawking thermodynamics and a toy merger waveform.
//
// Usage:
//
//	blackholecalc analyze --mass 10 --spin 0.9
//	blackholecalc sweep --mass 10 --from 0 --to 0.99
//
// See --help for all available options.
package main

// main is the entry point for blackholecalc.
func main() {
	Execute()
}
