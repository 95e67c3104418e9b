// Package mapdata fetches and decodes map snapshots (waypoints, POIs, ARC
// missions) from the community map data service or a local JSON file.
package mapdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/raidtools/lootrun/pkg/core"
)

// Client handles communication with the map data service.
type Client struct {
	baseURL    string
	apiKey     string
	latLng     bool
	httpClient *http.Client
}

// New creates a map data client. latLng selects leaflet-style lat/lng
// coordinate decoding for feeds that publish geographic coordinates.
func New(baseURL, apiKey string, latLng bool) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		latLng:     latLng,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Healthcheck checks if the map data service is reachable.
func (c *Client) Healthcheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthcheck", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("healthcheck request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck returned status %d", resp.StatusCode)
	}
	return nil
}

// FetchBundle downloads and decodes the full snapshot for one map.
func (c *Client) FetchBundle(ctx context.Context, mapID string) (*core.MapBundle, error) {
	url := fmt.Sprintf("%s/api/v1/maps/%s/bundle", c.baseURL, mapID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bundle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bundle request returned status %d", resp.StatusCode)
	}

	var wire wireBundle
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	return decode(&wire, c.latLng), nil
}

// LoadBundleFile reads a snapshot from a local JSON file, same wire format as
// the service.
func LoadBundleFile(path string, latLng bool) (*core.MapBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file: %w", err)
	}
	var wire wireBundle
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode bundle file: %w", err)
	}
	return decode(&wire, latLng), nil
}
