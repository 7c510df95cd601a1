package outages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrGroupNotFound indicates the feed does not contain the configured outage
// group. Retrying won't help until the configuration is fixed.
var ErrGroupNotFound = errors.New("group not found in outage feed")

// Client retrieves the planned outage schedule for one outage group.
type Client struct {
	// URL of the planned-outages endpoint, including region & operator path.
	URL        string
	HTTPClient *http.Client
}

// GetGroupSchedule fetches the feed and returns the raw schedule for the
// given group.
func (c *Client) GetGroupSchedule(ctx context.Context, group string) (GroupSchedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return GroupSchedule{}, fmt.Errorf("outages: %w", err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return GroupSchedule{}, fmt.Errorf("outages: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return GroupSchedule{}, fmt.Errorf("outages: %s", resp.Status)
	}

	var groups map[string]GroupSchedule
	if err = json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return GroupSchedule{}, fmt.Errorf("outages: decode: %w", err)
	}

	groupSchedule, ok := groups[group]
	if !ok {
		return GroupSchedule{}, fmt.Errorf("%w: %q", ErrGroupNotFound, group)
	}
	return groupSchedule, nil
}
