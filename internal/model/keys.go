package model

// Input keys recorded in inputs.json.
const (
	InputMassSolar       = "mass_solar"
	InputSpin            = "spin"
	InputCharge          = "charge"
	InputTheta           = "theta"
	InputProbeRadius     = "probe_radius"
	InputAngularMomentum = "angular_momentum"
)

// Output keys recorded in outputs.json.
const (
	OutputGeometricMass      = "geometric_mass"
	OutputHorizonRadius      = "horizon_radius"
	OutputInnerHorizonRadius = "inner_horizon_radius"
	OutputISCORadius         = "isco_radius"
	OutputISCORetrograde     = "isco_radius_retrograde"
	OutputErgosphereEquator  = "ergosphere_equator"
	OutputErgospherePole     = "ergosphere_pole"
	OutputRedshift           = "redshift"
	OutputEffectivePotential = "effective_potential"
	OutputTemperature        = "temperature"
	OutputEntropy            = "entropy"
	OutputLuminosity         = "luminosity"
	OutputPeakWavelength     = "peak_wavelength"
	OutputLifetime           = "lifetime"
	OutputHorizonArea        = "horizon_area"
)

// Units used for recorded quantities.
const (
	UnitSolarMass     = "M_sun"
	UnitDimensionless = "dimensionless"
	UnitMeters        = "meters"
	UnitRadians       = "radians"
	UnitGeometricMass = "M"
	UnitKelvin        = "K"
	UnitJoulePerK     = "J/K"
	UnitWatts         = "W"
	UnitYears         = "years"
	UnitSquareMeters  = "m^2"
)
