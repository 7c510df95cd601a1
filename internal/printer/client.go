// Package printer controls a Klipper 3D printer through the Moonraker HTTP
// API. It exposes the three operations the guard needs: pause, park (partial
// cool-down) and resume (reheat, settle, continue).
package printer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	commandTimeout = 15 * time.Second
	// heater & resume commands block until the printer reaches temperature
	slowCommandTimeout = 90 * time.Second
)

// Client sends G-code scripts to a Moonraker instance.
type Client struct {
	// BaseURL of the Moonraker API, e.g. http://127.0.0.1:7125
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Pause pauses the running print.
func (c *Client) Pause(ctx context.Context) error {
	c.Logger.Warn("pausing print")
	return c.runScript(ctx, Script{{Code: cmdPause}})
}

// Park cools both heaters down to coolTemp. Keeping them warm instead of
// switching them off makes the post-outage reheat considerably shorter.
func (c *Client) Park(ctx context.Context, coolTemp float64) error {
	c.Logger.Info("parking printer", slog.Float64("temperature", coolTemp))
	return c.runScript(ctx, Script{setBedTemp(coolTemp), setExtruderTemp(coolTemp)})
}

// Resume restores the heater setpoints, waits for settle to give the heaters
// a head start, then continues the print.
func (c *Client) Resume(ctx context.Context, extruderTemp, bedTemp float64, settle time.Duration) error {
	c.Logger.Info("resuming print",
		slog.Float64("extruder", extruderTemp),
		slog.Float64("bed", bedTemp),
	)
	if err := c.runScript(ctx, Script{setExtruderTemp(extruderTemp), setBedTemp(bedTemp)}); err != nil {
		return fmt.Errorf("heat up: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(settle):
	}

	return c.runScript(ctx, Script{{Code: cmdResume}})
}

func (c *Client) runScript(ctx context.Context, script Script) error {
	timeout := commandTimeout
	if script.slow() {
		timeout = slowCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := c.BaseURL + "/printer/gcode/script?script=" + url.QueryEscape(script.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("moonraker: %w", err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("moonraker: %q: %w", script.String(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("moonraker: %q: %s", script.String(), resp.Status)
	}
	c.Logger.Debug("script executed", slog.String("script", script.String()))
	return nil
}
