package printer

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestScript_String(t *testing.T) {
	tests := []struct {
		name   string
		script Script
		want   string
	}{
		{
			name:   "pause",
			script: Script{{Code: cmdPause}},
			want:   "PAUSE",
		},
		{
			name:   "park",
			script: Script{setBedTemp(40), setExtruderTemp(40)},
			want:   "M140 S40\nM104 S40",
		},
		{
			name:   "heat up",
			script: Script{setExtruderTemp(217.5), setBedTemp(80)},
			want:   "M104 S217.5\nM140 S80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.script.String())
		})
	}
}

func TestScript_slow(t *testing.T) {
	assert.False(t, Script{{Code: cmdPause}}.slow())
	assert.True(t, Script{{Code: cmdResume}}.slow())
	assert.True(t, Script{setBedTemp(40), setExtruderTemp(40)}.slow())
}
