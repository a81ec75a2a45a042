package config

import (
	"fmt"
	"sort"
)

// Preset holds a named set of black hole parameters.
// Nil fields are unset so an explicit zero spin can override a default.
type Preset struct {
	// Mass is the mass in solar masses.
	Mass *float64 `yaml:"mass,omitempty" toml:"mass,omitempty"`

	// Spin is the dimensionless spin a*.
	Spin *float64 `yaml:"spin,omitempty" toml:"spin,omitempty"`

	// Charge is the dimensionless charge Q*.
	Charge *float64 `yaml:"charge,omitempty" toml:"charge,omitempty"`

	// Theta is the redshift probe angle in radians.
	Theta *float64 `yaml:"theta,omitempty" toml:"theta,omitempty"`

	// ProbeRadius is the redshift probe radius in units of M.
	ProbeRadius *float64 `yaml:"radius,omitempty" toml:"radius,omitempty"`

	// AngularMomentum is the potential probe L in units of M.
	AngularMomentum *float64 `yaml:"angularMomentum,omitempty" toml:"angularMomentum,omitempty"`

	// Description is stored with runs created from this preset.
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`
}

// File represents the structure of the .blackholecalc configuration file.
type File struct {
	// Defaults apply to every evaluation unless a preset overrides them.
	Defaults Preset `yaml:"defaults,omitempty" toml:"defaults,omitempty"`

	// Presets maps names such as "sgr-a" to parameter sets.
	Presets map[string]Preset `yaml:"presets,omitempty" toml:"presets,omitempty"`
}

// GetPreset returns the named preset merged over the defaults.
// An empty name returns the defaults alone.
func (cf *File) GetPreset(name string) (Preset, error) {
	result := cf.Defaults
	if name == "" {
		return result, nil
	}

	p, ok := cf.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}

	return result.merge(p), nil
}

// Names returns the preset names in sorted order.
func (cf *File) Names() []string {
	names := make([]string, 0, len(cf.Presets))
	for n := range cf.Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// merge returns p with every set field of override applied.
func (p Preset) merge(override Preset) Preset {
	if override.Mass != nil {
		p.Mass = override.Mass
	}
	if override.Spin != nil {
		p.Spin = override.Spin
	}
	if override.Charge != nil {
		p.Charge = override.Charge
	}
	if override.Theta != nil {
		p.Theta = override.Theta
	}
	if override.ProbeRadius != nil {
		p.ProbeRadius = override.ProbeRadius
	}
	if override.AngularMomentum != nil {
		p.AngularMomentum = override.AngularMomentum
	}
	if override.Description != "" {
		p.Description = override.Description
	}
	return p
}

// Apply copies every set field of p into c.
func (p Preset) Apply(c *Config) {
	if p.Mass != nil {
		c.MassSolar = *p.Mass
	}
	if p.Spin != nil {
		c.Spin = *p.Spin
	}
	if p.Charge != nil {
		c.Charge = *p.Charge
	}
	if p.Theta != nil {
		c.Theta = *p.Theta
	}
	if p.ProbeRadius != nil {
		c.ProbeRadius = *p.ProbeRadius
	}
	if p.AngularMomentum != nil {
		c.AngularMomentum = *p.AngularMomentum
	}
	if p.Description != "" {
		c.Description = p.Description
	}
}
