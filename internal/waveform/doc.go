// Package waveform synthesizes a toy gravitational-wave strain series for
// a compact binary merger.
//
// The inspiral follows the leading-order chirp relation, parameterized by
// the chirp mass. At t = 0 the signal switches to a damped sinusoid whose
// frequency and decay time scale empirically with the total mass. There is
// no separate merger formula; merger is the join between the two pieces.
//
// The result is illustrative. It is not a template suitable for matched
// filtering.
package waveform
