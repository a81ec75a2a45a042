package units

// Converter converts masses and times between SI and geometric units using
// a fixed constant table. The zero value is not usable; create one with
// NewConverter.
type Converter struct {
	c Constants
}

// NewConverter returns a Converter bound to the given constants.
// A zero Constants value falls back to CODATA2018.
func NewConverter(c Constants) Converter {
	if c.IsZero() {
		c = CODATA2018()
	}
	return Converter{c: c}
}

// Constants returns the table the converter was built with.
func (cv Converter) Constants() Constants {
	return cv.c
}

// MassSIToGeometric converts a mass in kilograms to meters: M = G*m/c^2.
func (cv Converter) MassSIToGeometric(massKg float64) float64 {
	return cv.c.G * massKg / (cv.c.C * cv.c.C)
}

// MassGeometricToSI converts a geometric mass in meters back to kilograms.
func (cv Converter) MassGeometricToSI(massM float64) float64 {
	return massM * cv.c.C * cv.c.C / cv.c.G
}

// TimeGeometricToSI converts a geometric time in meters to seconds: t = t_m/c.
func (cv Converter) TimeGeometricToSI(timeM float64) float64 {
	return timeM / cv.c.C
}

// SolarToKg converts solar masses to kilograms.
func (cv Converter) SolarToKg(massSolar float64) float64 {
	return massSolar * cv.c.SolarMass
}

// SolarToGeometric converts solar masses directly to geometric meters.
func (cv Converter) SolarToGeometric(massSolar float64) float64 {
	return cv.MassSIToGeometric(cv.SolarToKg(massSolar))
}

// SolarToSeconds converts solar masses to the light-crossing time G*m/c^3.
func (cv Converter) SolarToSeconds(massSolar float64) float64 {
	return cv.TimeGeometricToSI(cv.SolarToGeometric(massSolar))
}
