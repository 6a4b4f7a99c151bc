// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

import (
	"context"
	"log/slog"
	"time"

	"github.com/deepak-ramesh/map-task/internal/geodata"
	"github.com/deepak-ramesh/map-task/internal/icon"
	"github.com/deepak-ramesh/map-task/internal/logger"
	"github.com/deepak-ramesh/map-task/internal/marker"
	"github.com/deepak-ramesh/map-task/internal/metrics"
)

// launchFetch runs one fetch cycle in the background with the context given to Start. A later
// clear does not cancel it. Nothing is started once that context is done.
func (c *Controller) launchFetch() {
	c.mu.RLock()
	ctx := c.ctx
	c.mu.RUnlock()
	if ctx.Err() != nil {
		return
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		features, err := c.fetch(ctx)
		if err != nil {
			return
		}
		c.insertDynamic(features)
	}()
}

// RefreshDynamic fetches the dynamic markers and replaces the current ones once the fetch
// succeeded. On failure the dynamic markers are left unchanged.
func (c *Controller) RefreshDynamic(ctx context.Context) error {
	markers, err := c.markersIfReady()
	if err != nil {
		return err
	}
	c.pending.Add(1)
	defer c.pending.Done()

	features, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	if _, err = markers.Clear(marker.Dynamic); err != nil {
		return err
	}
	c.insertDynamic(features)
	return nil
}

// LastFetch returns when the dynamic markers were last fetched successfully.
func (c *Controller) LastFetch() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastFetch
}

func (c *Controller) fetch(ctx context.Context) ([]geodata.LocationFeature, error) {
	start := time.Now()
	features, err := c.Source.Fetch(ctx, c.query)
	c.observeFetch(time.Since(start), err)
	if err != nil {
		c.Logger.Error("failed to fetch dynamic locations", logger.Err(err), slog.String("source", c.Source.Name()))
		return nil, err
	}

	c.mu.Lock()
	c.lastFetch = time.Now()
	c.mu.Unlock()
	c.Logger.Debug("dynamic locations fetched", slog.String("source", c.Source.Name()),
		slog.Int("count", len(features)), slog.Duration("duration", time.Since(start)))
	return features, nil
}

func (c *Controller) observeFetch(duration time.Duration, err error) {
	if c.Metrics == nil {
		return
	}
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailure
	}
	c.Metrics.FetchTotal.WithLabelValues(result).Inc()
	c.Metrics.FetchDuration.Observe(duration.Seconds())
}

func (c *Controller) insertDynamic(features []geodata.LocationFeature) {
	c.mu.RLock()
	markers := c.markers
	c.mu.RUnlock()

	spec := c.Icons.MustGet(icon.Generic)
	for _, feature := range features {
		popup, err := c.Presenter.DynamicPopup(feature)
		if err != nil {
			c.Logger.Warn("failed to render popup", logger.Err(err), slog.String("name", feature.Label()))
			continue
		}
		if _, err = markers.Insert(marker.Dynamic, feature.Coordinate, spec, popup); err != nil {
			c.Logger.Error("failed to insert dynamic marker", logger.Err(err))
			continue
		}
		c.countInsert(marker.Dynamic)
	}
}
