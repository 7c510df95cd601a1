package monitor

import (
	"bytes"
	"github.com/ovasylenko/printer-sentry/internal/profiles"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"os"
	"testing"
)

func Test_makeTasks(t *testing.T) {
	testCases := []struct {
		name   string
		config string
		length int
	}{
		{
			name: "defaults",
			config: `
printer:
  url: http://127.0.0.1:7125
exporter:
  addr: :9091
`,
			length: 6,
		},
		{
			name: "slack",
			config: `
printer:
  url: http://127.0.0.1:7125
slack:
  token: "1234"
  channel: "#printers"
`,
			length: 6,
		},
	}

	for _, tt := range testCases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := viper.New()
			cfg.SetConfigType("yaml")
			require.NoError(t, cfg.ReadConfig(bytes.NewBufferString(tt.config)))

			tasks := makeTasks(cfg, profiles.Profile{Extruder: 200, Bed: 60}, prometheus.NewPedanticRegistry(), slog.Default())
			assert.Len(t, tasks, tt.length)
		})
	}
}

func Test_FeedURL(t *testing.T) {
	cfg := viper.New()
	cfg.Set("outages.region", 25)
	cfg.Set("outages.dso", 902)
	assert.Equal(t,
		"https://app.yasno.ua/api/blackout-service/public/shutdowns/regions/25/dsos/902/planned-outages",
		FeedURL(cfg),
	)

	cfg.Set("outages.url", "http://localhost:8081/outages")
	assert.Equal(t, "http://localhost:8081/outages", FeedURL(cfg))
}

func Test_ResumeProfile(t *testing.T) {
	testCases := []struct {
		name     string
		material string
		extruder float64
		bed      float64
		wantErr  assert.ErrorAssertionFunc
		want     profiles.Profile
	}{
		{
			name:     "material",
			material: "petg",
			wantErr:  assert.NoError,
			want:     profiles.Profile{Extruder: 245, Bed: 80},
		},
		{
			name:     "overrides",
			material: "pla",
			extruder: 210,
			bed:      65,
			wantErr:  assert.NoError,
			want:     profiles.Profile{Extruder: 210, Bed: 65},
		},
		{
			name:     "unknown material",
			material: "peek",
			wantErr:  assert.Error,
		},
	}

	for _, tt := range testCases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := viper.New()
			cfg.Set("printer.material", tt.material)
			cfg.Set("printer.extruder-temp", tt.extruder)
			cfg.Set("printer.bed-temp", tt.bed)

			profile, err := ResumeProfile(cfg)
			tt.wantErr(t, err)
			if err == nil {
				assert.Equal(t, tt.want, profile)
			}
		})
	}
}

func Test_maybeLoadProfiles(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr assert.ErrorAssertionFunc
		want    profiles.Profile
	}{
		{
			name: "valid",
			content: `asa:
  extruder: 250
  bed: 95
`,
			wantErr: assert.NoError,
			want:    profiles.Profile{Extruder: 250, Bed: 95},
		},
		{
			name:    "invalid",
			content: `invalid yaml`,
			wantErr: assert.Error,
		},
		{
			name:    "missing",
			content: ``,
			wantErr: assert.NoError,
		},
	}

	for _, tt := range testCases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := os.CreateTemp("", "")
			require.NoError(t, err)

			if tt.content != "" {
				_, err := f.Write([]byte(tt.content))
				require.NoError(t, err)
				_ = f.Close()
				defer func() { _ = os.Remove(f.Name()) }()
			} else {
				_ = f.Close()
				_ = os.Remove(f.Name())
			}

			p, err := maybeLoadProfiles(f.Name())
			tt.wantErr(t, err)
			if err == nil {
				profile, ok := p.Lookup("pla")
				require.True(t, ok)
				assert.Equal(t, profiles.Profile{Extruder: 200, Bed: 60}, profile)
				if tt.content != "" {
					profile, ok = p.Lookup("asa")
					require.True(t, ok)
					assert.Equal(t, tt.want, profile)
				}
			}
		})
	}
}
