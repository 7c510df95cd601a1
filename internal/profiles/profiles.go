// Package profiles holds the per-material heater setpoints used when
// resuming a print.
package profiles

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"strings"
)

// Profile holds the heater setpoints for one material, in °C.
type Profile struct {
	Extruder float64 `yaml:"extruder"`
	Bed      float64 `yaml:"bed"`
}

type Profiles map[string]Profile

// Defaults returns the built-in profiles for common materials.
func Defaults() Profiles {
	return Profiles{
		"pla":  {Extruder: 200, Bed: 60},
		"petg": {Extruder: 245, Bed: 80},
		"abs":  {Extruder: 240, Bed: 100},
	}
}

// Load reads material profiles from r and merges them over the defaults, so
// a profiles file only needs to list the materials it changes or adds.
func Load(r io.Reader) (Profiles, error) {
	var loaded Profiles
	if err := yaml.NewDecoder(r).Decode(&loaded); err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}

	profiles := Defaults()
	for material, profile := range loaded {
		profiles[strings.ToLower(material)] = profile
	}
	return profiles, nil
}

// Lookup returns the profile for a material. Lookup is case-insensitive.
func (p Profiles) Lookup(material string) (Profile, bool) {
	profile, ok := p[strings.ToLower(material)]
	return profile, ok
}
