// Package log provides the application logger, built on top of the
// standard slog package.
//
// Physical results are full of legitimate infinities: the redshift of an
// emitter on the horizon, the lifetime and peak wavelength of an extremal
// hole. slog's JSON handler cannot encode non-finite floats and emits an
// error string in their place, so every logger created here wraps its
// handler in a FiniteHandler that rewrites such values to "+Inf", "-Inf"
// or "NaN" before they reach the underlying handler.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("redshift probe", "r", r, "z", z) // z may be +Inf
//	slog.SetDefault(logger)
package log
