// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package liveclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/gala-live/models"
)

// DefaultRefreshInterval is how often a screen re-reads its snapshot to
// pick up events missed while the push channel was down
const DefaultRefreshInterval = 60 * time.Second

// Fetcher reads the bulk collections a screen is seeded from
type Fetcher interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// SnapshotClient fetches snapshots from the REST API
type SnapshotClient struct {
	base string
	http *http.Client
}

func NewSnapshotClient(base string, hc *http.Client) *SnapshotClient {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &SnapshotClient{base: strings.TrimRight(base, "/"), http: hc}
}

// Fetch reads check-ins, wish cards and the current groups
func (c *SnapshotClient) Fetch(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := c.getJSON(ctx, "/checkins", &snap.Checkins); err != nil {
		return Snapshot{}, err
	}
	if err := c.getJSON(ctx, "/wishes", &snap.WishCards); err != nil {
		return Snapshot{}, err
	}
	if err := c.getJSON(ctx, "/groups", &snap.Groups); err != nil {
		return Snapshot{}, err
	}

	// An empty collection is still a fetched collection
	if snap.Checkins == nil {
		snap.Checkins = []models.Checkin{}
	}
	if snap.WishCards == nil {
		snap.WishCards = []models.WishCard{}
	}
	if snap.Groups == nil {
		snap.Groups = []models.Group{}
	}
	return snap, nil
}

// Stats reads the counters shown in the screen header
func (c *SnapshotClient) Stats(ctx context.Context) (models.StatsResponse, error) {
	var stats models.StatsResponse
	err := c.getJSON(ctx, "/stats", &stats)
	return stats, err
}

func (c *SnapshotClient) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: failed to decode: %w", path, err)
	}
	return nil
}

// Sync seeds screen from f and re-fetches every interval until ctx is
// done, so events missed while disconnected still show up. The first fetch
// is retried every retryDelay (DefaultReconnectDelay when <= 0) until it
// succeeds, since pushes stay buffered until then. Later failures are
// logged and retried on the next tick. Interval <= 0 stops after seeding.
func Sync(ctx context.Context, f Fetcher, screen *Screen, interval, retryDelay time.Duration) error {
	if retryDelay <= 0 {
		retryDelay = DefaultReconnectDelay
	}

	refresh := func() bool {
		snap, err := f.Fetch(ctx)
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("snapshot fetch failed", "error", err)
			}
			return false
		}
		screen.ApplySnapshot(snap)
		return true
	}

	for !refresh() {
		retry := time.NewTimer(retryDelay)
		select {
		case <-ctx.Done():
			retry.Stop()
			return ctx.Err()
		case <-retry.C:
		}
	}
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			refresh()
		}
	}
}
