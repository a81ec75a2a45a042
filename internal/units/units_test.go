package units

import (
	"math"
	"testing"
)

func TestCODATA2018(t *testing.T) {
	t.Parallel()

	c := CODATA2018()

	t.Run("speed of light is exact", func(t *testing.T) {
		t.Parallel()
		if c.C != 299792458.0 {
			t.Errorf("expected c = 299792458, got %v", c.C)
		}
	})

	t.Run("table is not zero", func(t *testing.T) {
		t.Parallel()
		if c.IsZero() {
			t.Error("expected populated constants")
		}
	})

	t.Run("each call returns an independent copy", func(t *testing.T) {
		t.Parallel()
		a := CODATA2018()
		a.G = 0
		if CODATA2018().G == 0 {
			t.Error("mutating a copy must not leak into later calls")
		}
	})
}

func TestConverterRoundTrip(t *testing.T) {
	t.Parallel()

	cv := NewConverter(CODATA2018())

	for _, kg := range []float64{1, 1.5e3, 1.98847e30, 8.55e36, 1e45} {
		geom := cv.MassSIToGeometric(kg)
		back := cv.MassGeometricToSI(geom)
		if math.Abs(back-kg)/kg > 1e-12 {
			t.Errorf("round trip of %g kg returned %g", kg, back)
		}
	}
}

func TestConverterSolarMass(t *testing.T) {
	t.Parallel()

	cv := NewConverter(Constants{})

	t.Run("zero constants fall back to CODATA2018", func(t *testing.T) {
		t.Parallel()
		if cv.Constants() != CODATA2018() {
			t.Error("expected CODATA2018 fallback")
		}
	})

	t.Run("one solar mass is about 1477 m", func(t *testing.T) {
		t.Parallel()
		m := cv.SolarToGeometric(1)
		if math.Abs(m-1476.6) > 1 {
			t.Errorf("expected ~1476.6 m, got %v", m)
		}
	})

	t.Run("one solar mass is about 4.93 microseconds", func(t *testing.T) {
		t.Parallel()
		s := cv.SolarToSeconds(1)
		if math.Abs(s-4.925e-6) > 1e-8 {
			t.Errorf("expected ~4.925e-6 s, got %v", s)
		}
	})

	t.Run("geometric time divides by c", func(t *testing.T) {
		t.Parallel()
		if got := cv.TimeGeometricToSI(299792458.0); got != 1 {
			t.Errorf("expected 1 s, got %v", got)
		}
	})
}
