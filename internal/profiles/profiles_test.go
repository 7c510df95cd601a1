package profiles_test

import (
	"github.com/ovasylenko/printer-sentry/internal/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	p, err := profiles.Load(strings.NewReader(`
petg:
  extruder: 240
  bed: 85
asa:
  extruder: 250
  bed: 100
`))
	require.NoError(t, err)

	// overridden
	profile, ok := p.Lookup("PETG")
	require.True(t, ok)
	assert.Equal(t, profiles.Profile{Extruder: 240, Bed: 85}, profile)

	// added
	profile, ok = p.Lookup("asa")
	require.True(t, ok)
	assert.Equal(t, profiles.Profile{Extruder: 250, Bed: 100}, profile)

	// defaults survive a partial file
	profile, ok = p.Lookup("pla")
	require.True(t, ok)
	assert.Equal(t, profiles.Profile{Extruder: 200, Bed: 60}, profile)

	_, ok = p.Lookup("nylon")
	assert.False(t, ok)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := profiles.Load(strings.NewReader("not valid: [yaml"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	p := profiles.Defaults()
	for _, material := range []string{"pla", "petg", "abs"} {
		profile, ok := p.Lookup(material)
		require.True(t, ok, material)
		assert.NotZero(t, profile.Extruder)
		assert.NotZero(t, profile.Bed)
	}
}
