// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/deepak-ramesh/map-task/internal/canvas"
	"github.com/deepak-ramesh/map-task/internal/marker"
)

// HandleAction dispatches a user triggered action. It is registered with the canvas.
func (c *Controller) HandleAction(ctx context.Context, action canvas.Action) error {
	var err error
	switch action {
	case canvas.ActionReloadStatic:
		err = c.ReloadStatic(ctx)
	case canvas.ActionClearStatic:
		err = c.ClearStatic(ctx)
	case canvas.ActionClearDynamic:
		err = c.ClearDynamic(ctx)
	case canvas.ActionRefetchDynamic:
		err = c.RefetchDynamic(ctx)
	default:
		return fmt.Errorf("%w: %s", canvas.ErrUnknownAction, action)
	}
	if err != nil {
		return err
	}
	if c.Metrics != nil {
		c.Metrics.ActionsTotal.WithLabelValues(string(action)).Inc()
	}
	c.Logger.Debug("map action handled", slog.String("action", string(action)))
	return nil
}

// ReloadStatic inserts the fixed markers again without clearing the current ones first.
func (c *Controller) ReloadStatic(context.Context) error {
	if _, err := c.markersIfReady(); err != nil {
		return err
	}
	c.seedStatic()
	c.notify(canvas.ActionReloadStatic)
	return nil
}

func (c *Controller) ClearStatic(context.Context) error {
	return c.clear(marker.Static, canvas.ActionClearStatic)
}

func (c *Controller) ClearDynamic(context.Context) error {
	return c.clear(marker.Dynamic, canvas.ActionClearDynamic)
}

func (c *Controller) clear(collection marker.Collection, action canvas.Action) error {
	markers, err := c.markersIfReady()
	if err != nil {
		return err
	}
	removed, err := markers.Clear(collection)
	if err != nil {
		return err
	}
	c.Logger.Debug("markers removed", slog.String("collection", collection.String()), slog.Int("count", removed))
	c.notify(action)
	return nil
}

// RefetchDynamic starts a new fetch cycle in the background. The current dynamic markers are kept,
// so repeated refetches accumulate markers.
func (c *Controller) RefetchDynamic(context.Context) error {
	if _, err := c.markersIfReady(); err != nil {
		return err
	}
	c.launchFetch()
	c.notify(canvas.ActionRefetchDynamic)
	return nil
}

// MarkerCounts returns the size of the static and dynamic collections.
func (c *Controller) MarkerCounts() (static, dynamic int) {
	c.mu.RLock()
	markers := c.markers
	c.mu.RUnlock()
	if markers == nil {
		return 0, 0
	}
	return markers.Len(marker.Static), markers.Len(marker.Dynamic)
}

// Markers returns the handles of collection in insertion order, or nil before the map exists.
func (c *Controller) Markers(collection marker.Collection) []marker.Handle {
	c.mu.RLock()
	markers := c.markers
	c.mu.RUnlock()
	if markers == nil {
		return nil
	}
	return markers.Handles(collection)
}
