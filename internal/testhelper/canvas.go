// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package testhelper

import (
	"context"
	"sync"

	"github.com/deepak-ramesh/map-task/internal/canvas"
)

// Canvas is an in-memory canvas.Canvas that records every call.
type Canvas struct {
	mu            sync.Mutex
	views         []canvas.View
	layers        []canvas.TileLayer
	markers       map[string]canvas.Marker
	order         []string
	removed       int
	notifications []string
	handler       canvas.ActionHandler

	// ViewErr and LayerErr are returned by SetView and AddTileLayer when set.
	ViewErr  error
	LayerErr error
	// OnRegister is called when an action handler is registered.
	OnRegister func()
}

func NewCanvas() *Canvas {
	return &Canvas{markers: make(map[string]canvas.Marker)}
}

func (c *Canvas) SetView(view canvas.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ViewErr != nil {
		return c.ViewErr
	}
	c.views = append(c.views, view)
	return nil
}

func (c *Canvas) AddTileLayer(layer canvas.TileLayer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.LayerErr != nil {
		return c.LayerErr
	}
	c.layers = append(c.layers, layer)
	return nil
}

func (c *Canvas) AddMarker(marker canvas.Marker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markers[marker.ID] = marker
	c.order = append(c.order, marker.ID)
}

func (c *Canvas) RemoveMarker(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.markers[id]; ok {
		delete(c.markers, id)
		c.removed++
	}
}

func (c *Canvas) Notify(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, message)
}

func (c *Canvas) OnAction(handler canvas.ActionHandler) {
	if c.OnRegister != nil {
		c.OnRegister()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// Views returns every view that was set.
func (c *Canvas) Views() []canvas.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]canvas.View{}, c.views...)
}

// TileLayers returns every attached tile layer.
func (c *Canvas) TileLayers() []canvas.TileLayer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]canvas.TileLayer{}, c.layers...)
}

// Markers returns the markers currently drawn, in insertion order.
func (c *Canvas) Markers() []canvas.Marker {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]canvas.Marker, 0, len(c.markers))
	for _, id := range c.order {
		if marker, ok := c.markers[id]; ok {
			out = append(out, marker)
		}
	}
	return out
}

// MarkersIn returns the drawn markers of the given layer.
func (c *Canvas) MarkersIn(layer string) []canvas.Marker {
	var out []canvas.Marker
	for _, marker := range c.Markers() {
		if marker.Layer == layer {
			out = append(out, marker)
		}
	}
	return out
}

// Removed returns how many markers were removed.
func (c *Canvas) Removed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removed
}

// Notifications returns every pushed notification.
func (c *Canvas) Notifications() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.notifications...)
}

// Handler returns the registered action handler.
func (c *Canvas) Handler() canvas.ActionHandler {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler
}

// Provider is a canvas.Provider handing out a fixed canvas or error.
type Provider struct {
	Canvas canvas.Canvas
	Err    error

	mu    sync.Mutex
	calls int
}

func (p *Provider) Name() string {
	return "test"
}

func (p *Provider) Acquire(context.Context) (canvas.Canvas, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Canvas, nil
}

// Calls returns how often Acquire was called.
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
